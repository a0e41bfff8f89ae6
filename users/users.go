package users

import (
	"context"
	"log"
	"net/http"
	"time"

	"user-portal-backend/config"
	"user-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
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

func (h *Handler) collection() *mongo.Collection {
	return h.mongoClient.Database(h.config.DatabaseName).Collection(h.config.CollectionUserName)
}

// HandleGetUsers returns every user in creation order. No pagination on the
// non-admin path.
func (h *Handler) HandleGetUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := h.collection().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("users: list failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not fetch users")
		return
	}
	defer cursor.Close(ctx)

	var records []User = make([]User, 0)
	if err = cursor.All(ctx, &records); err != nil {
		log.Printf("users: decode failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not decode users")
		return
	}

	response := make([]UserResponse, 0, len(records))
	for _, u := range records {
		response = append(response, NewUserResponse(u))
	}

	utils.RespondOK(c, response)
}

// HandleCreateUser creates a user without credentials. The record gets the
// default role; credentials can only be attached through registration.
func (h *Handler) HandleCreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateRequired([]utils.Field{
		{Name: "name", Value: req.Name},
		{Name: "email", Value: req.Email},
	}); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Check if email already exists
	var existing User
	err := h.collection().FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		utils.RespondError(c, http.StatusConflict, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("users: email lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now().UTC()
	user := User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.collection().InsertOne(ctx, user); err != nil {
		log.Printf("users: insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not create user")
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, NewUserResponse(user))
}

// HandleProtected echoes the caller snapshot attached by the auth middleware.
func (h *Handler) HandleProtected(c *gin.Context) {
	caller := gin.H{
		"id":    c.GetString("user_id"),
		"email": c.GetString("email"),
		"name":  c.GetString("name"),
		"role":  c.GetString("role"),
	}

	utils.RespondOK(c, ProtectedResponse{
		Message:    "This is a protected route",
		User:       caller,
		AccessTime: time.Now().UTC(),
	})
}
