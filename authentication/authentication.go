package authentication

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"user-portal-backend/config"
	"user-portal-backend/users"
	"user-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Tokens and their session records share this lifetime.
const tokenTTL = 24 * time.Hour

type Handler struct {
	mongoClient *mongo.Client
	config      *config.Config
	jwtSecret   []byte
}

func NewHandler(mongoClient *mongo.Client, config *config.Config, jwtSecret []byte) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		config:      config,
		jwtSecret:   jwtSecret,
	}
}

func (h *Handler) usersCollection() *mongo.Collection {
	return h.mongoClient.Database(h.config.DatabaseName).Collection(h.config.CollectionUserName)
}

func (h *Handler) sessionsCollection() *mongo.Collection {
	return h.mongoClient.Database(h.config.DatabaseName).Collection(h.config.CollectionSessionsName)
}

// HandleRegister creates a user with credentials and signs them in.
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateRequired([]utils.Field{
		{Name: "name", Value: req.Name},
		{Name: "email", Value: req.Email},
		{Name: "password", Value: req.Password},
	}); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Check if email already exists
	var existing users.User
	err := h.usersCollection().FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		utils.RespondError(c, http.StatusConflict, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("authentication: email lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("authentication: hash failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not hash password")
		return
	}

	now := time.Now().UTC()
	newUser := users.User{
		ID:           primitive.NewObjectID().Hex(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         users.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.usersCollection().InsertOne(ctx, newUser); err != nil {
		log.Printf("authentication: insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not create user")
		return
	}

	tokenString, err := h.issueSession(ctx, newUser)
	if err != nil {
		log.Printf("authentication: session issue failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	utils.RespondOK(c, AuthResponse{Token: tokenString, User: users.NewUserResponse(newUser)})
}

// HandleLogin verifies credentials and signs the user in.
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateRequired([]utils.Field{
		{Name: "email", Value: req.Email},
		{Name: "password", Value: req.Password},
	}); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user users.User
	err := h.usersCollection().FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("authentication: user lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := h.issueSession(ctx, user)
	if err != nil {
		log.Printf("authentication: session issue failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	utils.RespondOK(c, AuthResponse{Token: tokenString, User: users.NewUserResponse(user)})
}

// HandleLogout removes the caller's session record. The token itself stays
// valid until expiry; the record only feeds the admin session counts.
func (h *Handler) HandleLogout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := h.sessionsCollection().DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		log.Printf("authentication: session delete failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Could not sign out")
		return
	}

	utils.RespondOK(c, gin.H{"message": "Signed out successfully"})
}

// issueSession stores a session record and returns a signed token carrying
// the caller snapshot. Role in the token is fixed at login time.
func (h *Handler) issueSession(ctx context.Context, user users.User) (string, error) {
	now := time.Now().UTC()
	session := Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL),
	}

	if _, err := h.sessionsCollection().InsertOne(ctx, session); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"sid":     session.ID,
		"exp":     session.ExpiresAt.Unix(),
	})

	return token.SignedString(h.jwtSecret)
}

// AuthMiddleware resolves the caller from the bearer token and attaches the
// snapshot to the context. No session means 401, always, before any role
// consideration.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			utils.AbortError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Set("email", claims["email"])
		c.Set("name", claims["name"])
		c.Set("role", claims["role"])
		c.Set("session_id", claims["sid"])
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Runs after AuthMiddleware,
// and still answers 401 for a missing caller so an anonymous request can
// never learn the role requirement from a 403.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if c.GetString("role") != users.RoleAdmin {
			utils.AbortError(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// CallerFromContext rebuilds the caller snapshot set by AuthMiddleware.
func CallerFromContext(c *gin.Context) Caller {
	return Caller{
		ID:    c.GetString("user_id"),
		Email: c.GetString("email"),
		Name:  c.GetString("name"),
		Role:  c.GetString("role"),
	}
}
