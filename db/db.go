package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	VehicleCollection *mongo.Collection
	CartCollection    *mongo.Collection
	OrderCollection   *mongo.Collection
	AuditCollection   *mongo.Collection
	Client            *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "agromandi"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ProductCollection = Client.Database(dbName).Collection("products")
	VehicleCollection = Client.Database(dbName).Collection("vehicles")
	CartCollection = Client.Database(dbName).Collection("cart")
	OrderCollection = Client.Database(dbName).Collection("orders")
	AuditCollection = Client.Database(dbName).Collection("audit")
}
