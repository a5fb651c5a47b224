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

func vehicleFilter(q utils.CatalogQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["vehicleType"] = q.Category
	}
	if q.City != "" {
		filter["city"] = q.City
	}
	if q.SearchTerm != "" {
		filter["$or"] = []bson.M{
			{"vehicleType": bson.M{"$regex": primitive.Regex{Pattern: q.SearchTerm, Options: "i"}}},
			{"model": bson.M{"$regex": primitive.Regex{Pattern: q.SearchTerm, Options: "i"}}},
		}
	}
	return filter
}

func vehicleSort(sortBy string) bson.D {
	switch sortBy {
	case "capacityAsc":
		return bson.D{{Key: "capacity", Value: 1}}
	case "capacityDesc":
		return bson.D{{Key: "capacity", Value: -1}}
	case "priceAsc":
		return bson.D{{Key: "ratePerKm", Value: 1}}
	case "priceDesc":
		return bson.D{{Key: "ratePerKm", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// GetVehicles serves one page of transporter listings; same query contract as
// the product catalog with vehicleType in place of category.
func GetVehicles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := utils.ParseCatalogQuery(r, "vehicleType")
	filter := vehicleFilter(q)

	findOptions := options.Find().
		SetLimit(int64(q.Limit)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetSort(vehicleSort(q.SortBy))

	cursor, err := db.VehicleCollection.Find(ctx, filter, findOptions)
	if err != nil {
		log.Println("GetVehicles Find error:", err)
		http.Error(w, "Failed to fetch vehicles", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Vehicle
	if err := cursor.All(ctx, &items); err != nil {
		http.Error(w, "Failed to decode vehicles", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		items = []models.Vehicle{}
	}

	total, err := db.VehicleCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to count vehicles", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"total":      total,
		"totalPages": utils.TotalPages(total, q.Limit),
		"page":       q.Page,
	})
}

// GetVehicle returns one listing by id.
func GetVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var vehicle models.Vehicle
	err := db.VehicleCollection.FindOne(ctx, bson.M{"vehicleId": ps.ByName("id")}).Decode(&vehicle)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, vehicle)
}
