package cart

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/mq"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CheckoutPayload is what the client submits at checkout. Items and total are
// advisory: the server rebuilds both from its own cart snapshot.
type CheckoutPayload struct {
	Items                []models.OrderItem `json:"items"`
	Address              models.Address     `json:"address"`
	TotalAmount          float64            `json:"totalAmount"`
	DeliveryInstructions string             `json:"deliveryInstructions"`
	ContactInfo          string             `json:"contactInfo"`
}

// ValidateCheckout returns field-scoped validation errors; an empty map means
// the payload is submittable.
func ValidateCheckout(p CheckoutPayload) map[string]string {
	errs := make(map[string]string)
	if p.Address.Street == "" {
		errs["street"] = "Street is required"
	}
	if p.Address.City == "" {
		errs["city"] = "City is required"
	}
	if p.Address.Province == "" {
		errs["province"] = "Province is required"
	}
	if p.ContactInfo == "" {
		errs["contactInfo"] = "Contact info is required"
	}
	return errs
}

// BuildOrderItems freezes cart lines into order items. Prices recorded here
// are never recomputed from the live product.
func BuildOrderItems(cartItems []models.CartItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		items = append(items, models.OrderItem{
			ProductID:        ci.ProductID,
			Name:             ci.ProductName,
			Unit:             ci.Unit,
			PriceAtOrderTime: ci.Price,
			Quantity:         ci.Quantity,
			Variety:          ci.SelectedVariety,
		})
	}
	return items
}

// ComputeTotal sums price*quantity across items, rounded to 2 decimals.
func ComputeTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.PriceAtOrderTime * float64(it.Quantity)
	}
	return math.Round(total*100) / 100
}

// TotalMismatch reports whether a client-submitted total disagrees with the
// recomputed one by a cent or more. A zero client total means none was
// submitted and is never a mismatch.
func TotalMismatch(clientTotal, serverTotal float64) bool {
	return clientTotal > 0 && math.Abs(clientTotal-serverTotal) >= 0.01
}

// PlaceOrder converts the server-held cart into an order. The server is
// authoritative on items and total; a client total that disagrees with the
// recomputed one is rejected rather than trusted.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload CheckoutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("PlaceOrder decode error:", err)
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}

	if errs := ValidateCheckout(payload); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("PlaceOrder cart fetch error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	var cartItems []models.CartItem
	if err := cursor.All(ctx, &cartItems); err != nil {
		log.Println("PlaceOrder cart decode error:", err)
		http.Error(w, "Error reading cart data", http.StatusInternalServerError)
		return
	}
	if len(cartItems) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	items := BuildOrderItems(cartItems)
	total := ComputeTotal(items)

	// A submitted total is cross-checked against the recomputed one.
	if TotalMismatch(payload.TotalAmount, total) {
		log.Printf("PlaceOrder total mismatch for %s: client %.2f, server %.2f", userID, payload.TotalAmount, total)
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"error":       "Order total does not match cart contents",
			"totalAmount": total,
		})
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:              "ORD" + utils.GenerateDigitString(10),
		BuyerID:              userID,
		FarmerID:             cartItems[0].FarmerID,
		Items:                items,
		Address:              payload.Address,
		ContactInfo:          payload.ContactInfo,
		DeliveryInstructions: payload.DeliveryInstructions,
		TotalAmount:          total,
		Status:               models.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrder InsertOne error:", err)
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	// Stock decrement and cart cleanup are best-effort once the order exists.
	for _, it := range items {
		if _, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productId": it.ProductID, "stock": bson.M{"$gte": float64(it.Quantity)}},
			bson.M{"$inc": bson.M{"stock": -float64(it.Quantity)}},
		); err != nil {
			log.Printf("PlaceOrder stock decrement failed for %s: %v", it.ProductID, err)
		}
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("PlaceOrder cart cleanup error:", err)
	}
	invalidateCount(userID)

	mq.Emit(ctx, mq.OrderEvent{
		Type:        mq.EventOrderCreated,
		OrderID:     order.OrderID,
		FarmerID:    order.FarmerID,
		BuyerID:     order.BuyerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		At:          now,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"order": order})
}
