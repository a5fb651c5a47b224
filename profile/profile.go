package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetProfile returns the authenticated user's own record.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile edits contact details. Role is immutable here: changing it
// requires the audited admin path.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		City    string `json:"city"`
		Address string `json:"address"`
		Role    string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if input.Role != "" && input.Role != user.Role {
		http.Error(w, "Role cannot be changed from the profile", http.StatusForbidden)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.City != "" {
		set["city"] = utils.NormalizeCity(input.City)
	}
	if input.Address != "" {
		set["address"] = input.Address
	}

	phone := user.Phone
	if input.Phone != "" {
		phone = input.Phone
	}
	city := user.City
	if input.City != "" {
		city = input.City
	}
	address := user.Address
	if input.Address != "" {
		address = input.Address
	}
	set["profileComplete"] = phone != "" && city != "" && address != ""

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set}); err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}
