package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/rdx"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClampQuantity forces a requested quantity into [1, maxOrderQty]. A
// non-positive maxOrderQty falls back to the default maximum.
func ClampQuantity(quantity, maxOrderQty int) int {
	if maxOrderQty < 1 {
		maxOrderQty = models.DefaultMaxOrderQty
	}
	if quantity < 1 {
		return 1
	}
	if quantity > maxOrderQty {
		return maxOrderQty
	}
	return quantity
}

// FarmerConflict reports whether adding produce from productFarmerID would
// mix farmers in a cart that already holds cartFarmerID's items.
func FarmerConflict(cartFarmerID, productFarmerID string) bool {
	return cartFarmerID != "" && cartFarmerID != productFarmerID
}

func countCacheKey(userID string) string {
	return "cartcount:" + userID
}

func invalidateCount(userID string) {
	if err := rdx.RdxDel(countCacheKey(userID)); err != nil {
		log.Printf("cart: count cache invalidation failed for %s: %v", userID, err)
	}
}

// AddToCart validates the requested line against the product and upserts it.
// A cart only ever holds one farmer's products; adding from a second farmer
// is rejected.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID       string `json:"productId"`
		Quantity        int    `json:"quantity"`
		SelectedVariety string `json:"selectedVariety"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if input.ProductID == "" || input.Quantity < 1 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": input.ProductID}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	maxQty := product.MaxOrderQty
	if maxQty < 1 {
		maxQty = models.DefaultMaxOrderQty
	}
	minQty := product.MinOrderQty
	if minQty < 1 {
		minQty = 1
	}
	if input.Quantity < minQty || input.Quantity > maxQty {
		http.Error(w, "Quantity outside the allowed order range", http.StatusBadRequest)
		return
	}

	if input.SelectedVariety != "" && !varietyOffered(product.Varieties, input.SelectedVariety) {
		http.Error(w, "Unknown variety for this product", http.StatusBadRequest)
		return
	}

	// Single-farmer cart: reject produce from a second farmer.
	var other models.CartItem
	err = db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&other)
	switch {
	case err == nil:
		if FarmerConflict(other.FarmerID, product.FarmerID) {
			http.Error(w, "Cart already contains items from another farmer", http.StatusConflict)
			return
		}
	case err != mongo.ErrNoDocuments:
		log.Println("AddToCart farmer check error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	// Same product + variety merges into the existing line.
	lineFilter := bson.M{
		"userId":          userID,
		"productId":       input.ProductID,
		"selectedVariety": input.SelectedVariety,
	}
	var existing models.CartItem
	err = db.CartCollection.FindOne(ctx, lineFilter).Decode(&existing)
	switch {
	case err == nil:
		newQty := ClampQuantity(existing.Quantity+input.Quantity, maxQty)
		_, err = db.CartCollection.UpdateOne(ctx, lineFilter, bson.M{
			"$set": bson.M{"quantity": newQty, "maxOrderQty": maxQty},
		})
	case err == mongo.ErrNoDocuments:
		item := models.CartItem{
			ItemID:          utils.GenerateID(12),
			UserID:          userID,
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			Unit:            product.Unit,
			Price:           product.Price,
			Quantity:        input.Quantity,
			SelectedVariety: input.SelectedVariety,
			MaxOrderQty:     maxQty,
			FarmerID:        product.FarmerID,
			AddedAt:         time.Now(),
		}
		_, err = db.CartCollection.InsertOne(ctx, item)
	}
	if err != nil {
		log.Println("AddToCart write error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	invalidateCount(userID)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"status": "added"})
}

func varietyOffered(varieties []string, selected string) bool {
	for _, v := range varieties {
		if v == selected {
			return true
		}
	}
	return false
}

// GetCart returns every line in the buyer's cart.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("GetCart Find error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("GetCart cursor.All error:", err)
		http.Error(w, "Error reading cart data", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		items = []models.CartItem{}
	}

	for i := range items {
		if items[i].MaxOrderQty < 1 {
			items[i].MaxOrderQty = models.DefaultMaxOrderQty
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// UpdateCartItem sets a line's quantity, clamped to [1, maxOrderQty]. The
// clamped, persisted value is returned so the client can reconcile.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	filter := bson.M{"itemId": ps.ByName("id"), "userId": userID}
	var item models.CartItem
	if err := db.CartCollection.FindOne(ctx, filter).Decode(&item); err != nil {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}

	item.Quantity = ClampQuantity(input.Quantity, item.MaxOrderQty)
	if _, err := db.CartCollection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"quantity": item.Quantity},
	}); err != nil {
		log.Println("UpdateCartItem error:", err)
		http.Error(w, "Failed to update cart item", http.StatusInternalServerError)
		return
	}

	invalidateCount(userID)
	utils.RespondWithJSON(w, http.StatusOK, item)
}

func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.CartCollection.DeleteOne(ctx, bson.M{"itemId": ps.ByName("id"), "userId": userID})
	if err != nil {
		log.Println("RemoveCartItem error:", err)
		http.Error(w, "Failed to remove cart item", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}

	invalidateCount(userID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "removed"})
}

func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("ClearCart error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	invalidateCount(userID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "cleared"})
}

// CartCount serves the badge indicator. The count is cached in Redis and
// invalidated by every cart mutation.
func CartCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if cached, err := rdx.RdxGet(countCacheKey(userID)); err == nil {
		if count, err := strconv.Atoi(cached); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
			return
		}
	}

	count, err := db.CartCollection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("CartCount error:", err)
		http.Error(w, "Failed to count cart items", http.StatusInternalServerError)
		return
	}

	if err := rdx.SetWithExpiry(countCacheKey(userID), strconv.FormatInt(count, 10), time.Minute); err != nil {
		log.Printf("cart: count cache write failed for %s: %v", userID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}
