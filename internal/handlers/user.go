package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type ProfileUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type AddressRequest struct {
	Title     string `json:"title" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

func GetProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[PROFILE] [ERROR] get failed:", err)
			respondWithError(c, http.StatusNotFound, "PROFILE", "User not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"_id":       user.ID.Hex(),
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"addresses": addressesOrEmpty(user.Addresses),
		})
	}
}

func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "PROFILE", "Invalid body")
			return
		}

		set := bson.M{}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil {
			set["phone"] = strings.TrimSpace(*req.Phone)
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, "PROFILE", "No fields to update")
			return
		}
		set["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.User
		err := db.Collection("users").FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": set},
			updateReturnAfter(),
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "PROFILE", "User not found")
				return
			}
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, "PROFILE", duplicateFieldMessage(err))
				return
			}
			log.Println("[PROFILE] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PROFILE", "Server Error")
			return
		}

		log.Println("[PROFILE] [INFO] profile updated:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"_id":       updated.ID.Hex(),
			"name":      updated.Name,
			"email":     updated.Email,
			"phone":     updated.Phone,
			"addresses": addressesOrEmpty(updated.Addresses),
		})
	}
}

func CreateAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "ADDRESS", err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, "ADDRESS", "User not found")
			return
		}

		address := models.Address{
			ID:        uuid.NewString(),
			Title:     strings.TrimSpace(req.Title),
			Street:    strings.TrimSpace(req.Street),
			City:      strings.TrimSpace(req.City),
			State:     strings.TrimSpace(req.State),
			Zip:       strings.TrimSpace(req.Zip),
			Phone:     strings.TrimSpace(req.Phone),
			IsDefault: req.IsDefault,
		}

		addresses := appendAddress(user.Addresses, address)

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"addresses": addresses,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] insert address failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "Server Error")
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.ID)
		c.JSON(http.StatusOK, addresses)
	}
}

func DeleteAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "Invalid address id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, "ADDRESS", "User not found")
			return
		}

		addresses, found := removeAddress(user.Addresses, addressID)
		if !found {
			respondWithError(c, http.StatusNotFound, "ADDRESS", "Address not found")
			return
		}

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"addresses": addresses,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			log.Println("[ADDRESS] [ERROR] delete address failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "Server Error")
			return
		}

		log.Println("[ADDRESS] [INFO] address deleted:", addressID)
		c.JSON(http.StatusOK, addresses)
	}
}

// appendAddress adds the new entry; when it is the new default, every prior
// default is unset in the same list so at most one remains.
func appendAddress(addresses []models.Address, address models.Address) []models.Address {
	out := make([]models.Address, 0, len(addresses)+1)
	for _, addr := range addresses {
		if address.IsDefault {
			addr.IsDefault = false
		}
		out = append(out, addr)
	}
	return append(out, address)
}

func removeAddress(addresses []models.Address, id string) ([]models.Address, bool) {
	out := make([]models.Address, 0, len(addresses))
	found := false
	for _, addr := range addresses {
		if addr.ID == id {
			found = true
			continue
		}
		out = append(out, addr)
	}
	return out, found
}

func addressesOrEmpty(addresses []models.Address) []models.Address {
	if addresses == nil {
		return []models.Address{}
	}
	return addresses
}

// duplicateFieldMessage names the colliding unique field in the 409 body.
func duplicateFieldMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "phone") {
		return "Phone already in use"
	}
	return "Email already in use"
}
