package catalog

import (
	"context"
	"log"
	"net/http"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func productFilter(q utils.CatalogQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.City != "" {
		filter["city"] = q.City
	}
	if q.SearchTerm != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": primitive.Regex{Pattern: q.SearchTerm, Options: "i"}}},
			{"description": bson.M{"$regex": primitive.Regex{Pattern: q.SearchTerm, Options: "i"}}},
		}
	}
	return filter
}

func productSort(sortBy string) bson.D {
	switch sortBy {
	case "priceAsc":
		return bson.D{{Key: "price", Value: 1}}
	case "priceDesc":
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// GetFarmerProducts serves one catalog page: page, limit, category, city,
// sortBy, searchTerm query parameters.
func GetFarmerProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := utils.ParseCatalogQuery(r, "category")
	filter := productFilter(q)

	findOptions := options.Find().
		SetLimit(int64(q.Limit)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetSort(productSort(q.SortBy))

	cursor, err := db.ProductCollection.Find(ctx, filter, findOptions)
	if err != nil {
		log.Println("GetFarmerProducts Find error:", err)
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		http.Error(w, "Failed to decode products", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		items = []models.Product{}
	}

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to count products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"total":      total,
		"totalPages": utils.TotalPages(total, q.Limit),
		"page":       q.Page,
	})
}

// GetProduct returns one listing by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": ps.ByName("id")}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetProductCategories returns the fixed produce categories.
func GetProductCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories := []string{
		"Vegetables",
		"Fruits",
		"Grains",
		"Pulses",
		"Spices",
		"Dairy",
		"Dry Fruits",
		"Honey",
	}
	utils.RespondWithJSON(w, http.StatusOK, categories)
}
