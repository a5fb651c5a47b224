package catalog

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const uploadDir = "./uploads"

func saveImages(r *http.Request, formKey string) []string {
	formImages := r.MultipartForm.File[formKey]
	savedURLs := make([]string, 0, len(formImages))

	for _, fh := range formImages {
		file, err := fh.Open()
		if err != nil {
			continue
		}
		defer file.Close()

		filename, _, err := utils.SaveImageWithThumbnail(file, fh, uploadDir)
		if err != nil {
			log.Println("image upload failed:", err)
			continue
		}
		savedURLs = append(savedURLs, "/static/uploads/"+filename)
	}

	return savedURLs
}

func parseVarieties(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	varieties := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			varieties = append(varieties, v)
		}
	}
	return varieties
}

func productFromForm(r *http.Request) models.Product {
	item := models.Product{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Unit:        r.FormValue("unit"),
		City:        utils.NormalizeCity(r.FormValue("city")),
		Varieties:   parseVarieties(r.FormValue("varieties")),
		Featured:    r.FormValue("featured") == "true" || r.FormValue("featured") == "on",
	}

	if price, err := strconv.ParseFloat(r.FormValue("price"), 64); err == nil {
		item.Price = price
	}
	if stock, err := strconv.ParseFloat(r.FormValue("stock"), 64); err == nil {
		item.Stock = stock
	}
	if minQty, err := strconv.Atoi(r.FormValue("minOrderQty")); err == nil && minQty > 0 {
		item.MinOrderQty = minQty
	} else {
		item.MinOrderQty = 1
	}
	if maxQty, err := strconv.Atoi(r.FormValue("maxOrderQty")); err == nil && maxQty > 0 {
		item.MaxOrderQty = maxQty
	}

	return item
}

// CreateProduct inserts a new produce listing for the authenticated farmer.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	item := productFromForm(r)
	if item.Name == "" || item.Category == "" || item.Unit == "" || item.Price <= 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	item.ProductID = "p" + utils.GenerateID(12)
	item.FarmerID = userID
	item.ImageURLs = saveImages(r, "images")
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ProductCollection.InsertOne(ctx, item); err != nil {
		http.Error(w, "Failed to insert product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// UpdateProduct edits an existing listing; only its owner may do so. Images
// are replaced only when new ones are uploaded.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	item := productFromForm(r)
	item.UpdatedAt = time.Now()

	set := bson.M{
		"name":        item.Name,
		"description": item.Description,
		"category":    item.Category,
		"unit":        item.Unit,
		"city":        item.City,
		"price":       item.Price,
		"stock":       item.Stock,
		"varieties":   item.Varieties,
		"minOrderQty": item.MinOrderQty,
		"maxOrderQty": item.MaxOrderQty,
		"featured":    item.Featured,
		"updatedAt":   item.UpdatedAt,
	}
	if imgs := saveImages(r, "images"); len(imgs) > 0 {
		set["imageUrls"] = imgs
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": ps.ByName("id"), "farmerId": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productId": ps.ByName("id"), "farmerId": userID})
	if err != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

func vehicleFromForm(r *http.Request) models.Vehicle {
	v := models.Vehicle{
		VehicleType: r.FormValue("vehicleType"),
		Model:       r.FormValue("model"),
		City:        utils.NormalizeCity(r.FormValue("city")),
		Available:   r.FormValue("available") != "false",
	}

	if capacity, err := strconv.ParseFloat(r.FormValue("capacity"), 64); err == nil {
		v.Capacity = capacity
	}
	if rate, err := strconv.ParseFloat(r.FormValue("ratePerKm"), 64); err == nil {
		v.RatePerKm = rate
	}

	return v
}

// CreateVehicle inserts a listing for the authenticated transporter.
func CreateVehicle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	v := vehicleFromForm(r)
	if v.VehicleType == "" || v.Capacity <= 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	v.VehicleID = "v" + utils.GenerateID(12)
	v.TransporterID = userID
	v.ImageURLs = saveImages(r, "images")
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.VehicleCollection.InsertOne(ctx, v); err != nil {
		http.Error(w, "Failed to insert vehicle", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, v)
}

func UpdateVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	v := vehicleFromForm(r)
	set := bson.M{
		"vehicleType": v.VehicleType,
		"model":       v.Model,
		"city":        v.City,
		"capacity":    v.Capacity,
		"ratePerKm":   v.RatePerKm,
		"available":   v.Available,
		"updatedAt":   time.Now(),
	}
	if imgs := saveImages(r, "images"); len(imgs) > 0 {
		set["imageUrls"] = imgs
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.VehicleCollection.UpdateOne(ctx,
		bson.M{"vehicleId": ps.ByName("id"), "transporterId": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

func DeleteVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.VehicleCollection.DeleteOne(ctx, bson.M{"vehicleId": ps.ByName("id"), "transporterId": userID})
	if err != nil {
		http.Error(w, "Failed to delete vehicle", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
