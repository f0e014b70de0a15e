package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type ProductCreateRequest struct {
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"required"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Weight        string  `json:"weight"`
	Badge         string  `json:"badge"`
	OriginalPrice float64 `json:"originalPrice"`
}

// ProductUpdateRequest distinguishes absent keys from present-but-zero values
// with pointer fields, so price 0 or an emptied description are legitimate
// updates rather than no-ops.
type ProductUpdateRequest struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Description   *string  `json:"description"`
	Image         *string  `json:"image"`
	Category      *string  `json:"category"`
	Weight        *string  `json:"weight"`
	Badge         *string  `json:"badge"`
	OriginalPrice *float64 `json:"originalPrice"`
}

func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{})
		if err != nil {
			log.Println("[PRODUCT] [ERROR] list failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PRODUCT", "Server Error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			log.Println("[PRODUCT] [ERROR] decode failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PRODUCT", "Server Error")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "PRODUCT", "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "PRODUCT", "Product not found")
				return
			}
			log.Println("[PRODUCT] [ERROR] get failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PRODUCT", "Server Error")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "PRODUCT", "Name and price are required")
			return
		}

		now := time.Now()
		product := models.Product{
			Name:          strings.TrimSpace(req.Name),
			Price:         req.Price,
			Description:   strings.TrimSpace(req.Description),
			Image:         strings.TrimSpace(req.Image),
			Category:      strings.TrimSpace(req.Category),
			Weight:        strings.TrimSpace(req.Weight),
			Badge:         strings.TrimSpace(req.Badge),
			OriginalPrice: req.OriginalPrice,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PRODUCT", "Server Error")
			return
		}

		product.ID, _ = res.InsertedID.(primitive.ObjectID)
		log.Println("[PRODUCT] [INFO] product created:", product.Name)
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "PRODUCT", "Product not found")
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "PRODUCT", "Invalid body")
			return
		}

		set := buildProductUpdate(req)
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, "PRODUCT", "No fields to update")
			return
		}
		set["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(ctx,
			bson.M{"_id": productID},
			bson.M{"$set": set},
			updateReturnAfter(),
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "PRODUCT", "Product not found")
				return
			}
			log.Println("[PRODUCT] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PRODUCT", "Server Error")
			return
		}

		log.Println("[PRODUCT] [INFO] product updated:", productID.Hex())
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "PRODUCT", "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID})
		if err != nil {
			log.Println("[PRODUCT] [ERROR] delete failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PRODUCT", "Server Error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, "PRODUCT", "Product not found")
			return
		}

		log.Println("[PRODUCT] [INFO] product removed:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
	}
}

// buildProductUpdate turns the non-nil request fields into a $set document.
// Keys absent from the payload are never written.
func buildProductUpdate(req ProductUpdateRequest) bson.M {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		set["image"] = strings.TrimSpace(*req.Image)
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Weight != nil {
		set["weight"] = strings.TrimSpace(*req.Weight)
	}
	if req.Badge != nil {
		set["badge"] = strings.TrimSpace(*req.Badge)
	}
	if req.OriginalPrice != nil {
		set["originalPrice"] = *req.OriginalPrice
	}
	return set
}
