package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agromandi/db"
	"agromandi/globals"
	"agromandi/middleware"
	"agromandi/models"
	"agromandi/rdx"
	"agromandi/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL = 12 * time.Hour
	sessionHash    = "sessions" // Redis hash of userID -> active token
)

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if input.Username == "" || input.Password == "" || input.Email == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	// Admin accounts are provisioned out of band, never self-registered.
	if input.Role == "" || input.Role == models.RoleAdmin || !models.ValidRole(input.Role) {
		input.Role = models.RoleBuyer
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Err()
	if err == nil {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for user %s: %v", input.Username, err)
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		UserID:    "u" + utils.GenerateID(10),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Role:      input.Role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := rdx.RdxSet("users:"+user.UserID, user.Username); err != nil {
		log.Printf("Failed to cache username: %v", err)
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"userid":  user.UserID,
		"message": "Registration successful",
	})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Decode(&storedUser)
	if err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	expiry := time.Now().Add(accessTokenTTL)
	tokenString, err := generateAccessToken(storedUser, expiry)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset(sessionHash, storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{"lastLogin": time.Now()}},
	); err != nil {
		log.Printf("Failed to record last login for %s: %v", storedUser.UserID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":       tokenString,
		"tokenExpiry": expiry.Unix(),
		"userid":      storedUser.UserID,
		"role":        storedUser.Role,
	})
}

// CurrentUser verifies the bearer token and returns the user projection the
// client rehydrates its session from.
func CurrentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.UserProjection
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": claims.UserID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}

func LogoutUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" || userID != ps.ByName("userId") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := rdx.RdxHdel(sessionHash, userID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User logged out successfully"})
}

func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if time.Until(claims.ExpiresAt.Time) >= 30*time.Minute {
		http.Error(w, "Token refresh not allowed yet", http.StatusForbidden)
		return
	}

	expiry := time.Now().Add(accessTokenTTL)
	claims.ExpiresAt = jwt.NewNumericDate(expiry)
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	newTokenString, err := newToken.SignedString(globals.JwtSecret)
	if err != nil {
		http.Error(w, "Failed to refresh token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset(sessionHash, claims.UserID, newTokenString); err != nil {
		log.Printf("Error updating token in Redis: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":       newTokenString,
		"tokenExpiry": expiry.Unix(),
	})
}

func generateAccessToken(user models.User, expiry time.Time) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
