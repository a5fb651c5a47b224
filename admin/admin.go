package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderView is an order joined with buyer/farmer projections for review.
type OrderView struct {
	models.Order `bson:",inline"`
	Buyer        *models.UserProjection `json:"buyer,omitempty"`
	Farmer       *models.UserProjection `json:"farmer,omitempty"`
}

func userProjections(ctx context.Context, ids []string) map[string]*models.UserProjection {
	out := make(map[string]*models.UserProjection)
	if len(ids) == 0 {
		return out
	}

	cursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		log.Println("admin user lookup error:", err)
		return out
	}
	defer cursor.Close(ctx)

	var users []models.UserProjection
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("admin user decode error:", err)
		return out
	}
	for i := range users {
		out[users[i].UserID] = &users[i]
	}
	return out
}

// GetOrders returns every order with buyer/farmer projections attached.
// Read-only: admins review, they do not transition.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Failed to decode orders", http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(list)*2)
	for _, o := range list {
		ids = append(ids, o.BuyerID, o.FarmerID)
	}
	users := userProjections(ctx, ids)

	views := make([]OrderView, 0, len(list))
	for _, o := range list {
		views = append(views, OrderView{
			Order:  o,
			Buyer:  users[o.BuyerID],
			Farmer: users[o.FarmerID],
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": views})
}

// GetOrderDetail is the admin drill-down for a single order.
func GetOrderDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderId")}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	users := userProjections(ctx, []string{order.BuyerID, order.FarmerID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": OrderView{
		Order:  order,
		Buyer:  users[order.BuyerID],
		Farmer: users[order.FarmerID],
	}})
}

// GetUsers lists every account, minus credentials.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var users []models.UserProjection
	if err := cursor.All(ctx, &users); err != nil {
		http.Error(w, "Failed to decode users", http.StatusInternalServerError)
		return
	}
	if len(users) == 0 {
		users = []models.UserProjection{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": users})
}

// UpdateUserRole is the one path that may change a persisted role. Every
// change is recorded in the audit collection.
func UpdateUserRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actorID := utils.GetUserIDFromRequest(r)
	if actorID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !models.ValidRole(input.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	targetID := ps.ByName("userId")
	var target models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&target); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if target.Role == input.Role {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "unchanged"})
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": bson.M{"role": input.Role, "updatedAt": time.Now()}},
	); err != nil {
		http.Error(w, "Failed to update role", http.StatusInternalServerError)
		return
	}

	entry := models.AuditEntry{
		AuditID:   uuid.NewString(),
		Action:    "role-change",
		ActorID:   actorID,
		TargetID:  targetID,
		OldValue:  target.Role,
		NewValue:  input.Role,
		CreatedAt: time.Now(),
	}
	if _, err := db.AuditCollection.InsertOne(ctx, entry); err != nil {
		log.Println("audit insert failed:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}
