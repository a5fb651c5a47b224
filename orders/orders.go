package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/mq"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusChange is the PATCH body for an order transition.
type StatusChange struct {
	Status             string `json:"status"`
	CancelledBy        string `json:"cancelledBy,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// AuthorizeTransition checks ownership and the transition graph for a
// requested change. It returns an HTTP status and message; 0 means allowed.
func AuthorizeTransition(order models.Order, change StatusChange, userID, role string) (int, string) {
	if !models.ValidStatus(change.Status) {
		return http.StatusBadRequest, "Unknown order status"
	}

	switch role {
	case models.RoleFarmer:
		if order.FarmerID != userID {
			return http.StatusForbidden, "Order belongs to another farmer"
		}
	case models.RoleBuyer:
		if order.BuyerID != userID {
			return http.StatusForbidden, "Order belongs to another buyer"
		}
		if change.Status != models.StatusCancelled {
			return http.StatusForbidden, "Buyers may only cancel an order"
		}
	default:
		return http.StatusForbidden, "Forbidden"
	}

	if !models.CanTransition(order.Status, change.Status) {
		return http.StatusConflict, "Illegal status transition from " + order.Status
	}

	if change.Status == models.StatusCancelled && change.CancellationReason == "" {
		return http.StatusBadRequest, "Cancellation reason is required"
	}

	return 0, ""
}

// transitionLost reports whether the guarded update missed: the filter on the
// previously read status matched no document, so another transition landed
// between the read and the write.
func transitionLost(res *mongo.UpdateResult) bool {
	return res.MatchedCount == 0
}

// UpdateOrderStatus applies one guarded transition. Status patches touch only
// status, cancellation metadata, and updatedAt; item snapshots stay frozen.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role := utils.GetRoleFromRequest(r)

	var change StatusChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	filter := bson.M{"orderId": ps.ByName("orderId")}
	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, filter).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if code, msg := AuthorizeTransition(order, change, userID, role); code != 0 {
		http.Error(w, msg, code)
		return
	}

	now := time.Now()
	set := bson.M{"status": change.Status, "updatedAt": now}
	if change.Status == models.StatusCancelled {
		cancelledBy := change.CancelledBy
		if cancelledBy == "" {
			cancelledBy = role
		}
		set["cancelledBy"] = cancelledBy
		set["cancellationReason"] = change.CancellationReason
	}

	// Guard against a concurrent transition landing between read and write.
	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderId": order.OrderID, "status": order.Status},
		bson.M{"$set": set},
	)
	if err != nil {
		log.Println("UpdateOrderStatus error:", err)
		http.Error(w, "Failed to update order status", http.StatusInternalServerError)
		return
	}
	if transitionLost(res) {
		http.Error(w, "Order status changed concurrently; refresh and retry", http.StatusConflict)
		return
	}

	order.Status = change.Status
	order.UpdatedAt = now
	if change.Status == models.StatusCancelled {
		order.CancelledBy = set["cancelledBy"].(string)
		order.CancellationReason = change.CancellationReason
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:        mq.EventOrderStatusChanged,
		OrderID:     order.OrderID,
		FarmerID:    order.FarmerID,
		BuyerID:     order.BuyerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		At:          now,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}

func listOrders(w http.ResponseWriter, ctx context.Context, filter bson.M) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("listOrders Find error:", err)
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("listOrders decode error:", err)
		http.Error(w, "Failed to decode orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

// FarmerOrdersHistory returns every order placed against the authenticated
// farmer, newest first.
func FarmerOrdersHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listOrders(w, ctx, bson.M{"farmerId": userID})
}

// BuyerOrdersHistory returns the authenticated buyer's own orders.
func BuyerOrdersHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listOrders(w, ctx, bson.M{"buyerId": userID})
}

// GetOrder returns one order to its buyer, its farmer, or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role := utils.GetRoleFromRequest(r)

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderId")}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if userID != order.BuyerID && userID != order.FarmerID && role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}
