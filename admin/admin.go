package admin

import (
	"context"
	"log"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"user-portal-backend/config"
	"user-portal-backend/users"
	"user-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	mongoClient *mongo.Client
	config      *config.Config
}

func NewHandler(mongoClient *mongo.Client, config *config.Config) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		config:      config,
	}
}

func (h *Handler) usersCollection() *mongo.Collection {
	return h.mongoClient.Database(h.config.DatabaseName).Collection(h.config.CollectionUserName)
}

func (h *Handler) sessionsCollection() *mongo.Collection {
	return h.mongoClient.Database(h.config.DatabaseName).Collection(h.config.CollectionSessionsName)
}

// normalizePage parses the page query value. Non-numeric input falls back to
// the default; anything below 1 is clamped to 1.
func normalizePage(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// normalizeLimit parses the limit query value, clamped to 1..MaxLimit.
func normalizeLimit(value string) int {
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// searchFilter matches users whose name or email contains the search term,
// case-insensitively. An empty term matches everything.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := regexp.QuoteMeta(search)
	return bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"email": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// HandleListUsers returns one page of the filtered user set, newest first,
// with each record's active session count.
func (h *Handler) HandleListUsers(c *gin.Context) {
	page := normalizePage(c.Query("page"))
	limit := normalizeLimit(c.Query("limit"))
	filter := searchFilter(c.Query("search"))
	skip := (page - 1) * limit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Total is counted against the full filtered set, independently of the
	// page slice. The two reads are not snapshot-consistent and need not be.
	total, err := h.usersCollection().CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("admin: count failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not count users")
		return
	}

	findOptions := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := h.usersCollection().Find(ctx, filter, findOptions)
	if err != nil {
		log.Printf("admin: list failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not fetch users")
		return
	}
	defer cursor.Close(ctx)

	var records []users.User = make([]users.User, 0)
	if err = cursor.All(ctx, &records); err != nil {
		log.Printf("admin: decode failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not decode users")
		return
	}

	counts, err := h.activeSessionCounts(ctx, records)
	if err != nil {
		log.Printf("admin: session counts failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not count sessions")
		return
	}

	pageUsers := make([]AdminUser, 0, len(records))
	for _, u := range records {
		pageUsers = append(pageUsers, AdminUser{
			UserResponse:   users.NewUserResponse(u),
			ActiveSessions: counts[u.ID],
		})
	}

	utils.RespondOK(c, ListUsersResponse{
		Users: pageUsers,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	})
}

// activeSessionCounts groups unexpired sessions by user for the given page
// of records.
func (h *Handler) activeSessionCounts(ctx context.Context, records []users.User) (map[string]int64, error) {
	counts := make(map[string]int64, len(records))
	if len(records) == 0 {
		return counts, nil
	}

	ids := make([]string, 0, len(records))
	for _, u := range records {
		ids = append(ids, u.ID)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":    bson.M{"$in": ids},
			"expires_at": bson.M{"$gt": time.Now().UTC()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$user_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := h.sessionsCollection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		UserID string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	for _, g := range groups {
		counts[g.UserID] = g.Count
	}
	return counts, nil
}

// HandleUpdateUserRole changes a user's role. The role value is checked
// against the enumerated set before the store is touched.
func (h *Handler) HandleUpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateRequired([]utils.Field{
		{Name: "userId", Value: req.UserID},
		{Name: "role", Value: req.Role},
	}); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !users.ValidRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, "Role must be either 'user' or 'admin'")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := h.usersCollection().UpdateOne(
		ctx,
		bson.M{"_id": req.UserID},
		bson.M{"$set": bson.M{
			"role":       req.Role,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		log.Printf("admin: role update failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not update user")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(c, http.StatusNotFound, "User not found")
		return
	}

	var updated users.User
	if err := h.usersCollection().FindOne(ctx, bson.M{"_id": req.UserID}).Decode(&updated); err != nil {
		log.Printf("admin: fetch updated user failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not fetch updated user")
		return
	}

	utils.RespondOK(c, users.NewUserResponse(updated))
}

// HandleDeleteUser removes a user and its session records. Admins cannot
// delete themselves.
func (h *Handler) HandleDeleteUser(c *gin.Context) {
	userID := c.Query("id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "User ID is required")
		return
	}
	if userID == c.GetString("user_id") {
		utils.RespondError(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := h.usersCollection().DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		log.Printf("admin: delete failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not delete user")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(c, http.StatusNotFound, "User not found")
		return
	}

	// Drop the deleted user's sessions so admin listings never count a
	// session for a user that no longer exists.
	if _, err := h.sessionsCollection().DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		log.Printf("admin: session cleanup failed: %v", err)
	}

	utils.RespondOK(c, gin.H{"message": "User deleted successfully"})
}
