package handlers

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/notify"
)

const otpValidity = 10 * time.Minute

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OTPRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	OTP   string `json:"otp" binding:"required"`
}

// AdminLogin authenticates against the admins collection and issues an admin
// session token. A missing admin and a wrong password produce the same
// response, so the endpoint cannot be used to enumerate accounts.
func AdminLogin(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "AUTH", err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] admin lookup failed:", err)
				respondWithError(c, http.StatusInternalServerError, "AUTH", "Server Error")
				return
			}
			respondWithError(c, http.StatusUnauthorized, "AUTH", "Invalid email or password")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			respondWithError(c, http.StatusUnauthorized, "AUTH", "Invalid email or password")
			return
		}

		token, err := issueToken(admin.ID.Hex(), middleware.RoleAdmin, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, "AUTH", "Token generation failed")
			return
		}

		log.Println("[AUTH] [INFO] admin login succeeded:", admin.Email)
		c.JSON(http.StatusOK, gin.H{
			"_id":   admin.ID.Hex(),
			"email": admin.Email,
			"token": token,
		})
	}
}

// RequestOTP lazily creates a customer for the supplied identifier, stores a
// fresh 6-digit code with a 10-minute expiry, and dispatches it. The success
// response is only written after the send attempt has resolved; a sender
// failure fails the request, because an undelivered code blocks login.
func RequestOTP(db *mongo.Database, email notify.EmailSender, sms notify.SMSSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "OTP", "Email or Phone is required")
			return
		}

		identifier, byEmail, ok := normalizeIdentifier(req.Email, req.Phone)
		if !ok {
			respondWithError(c, http.StatusBadRequest, "OTP", "Email or Phone is required")
			return
		}

		code, err := generateOTP()
		if err != nil {
			log.Println("[OTP] [ERROR] code generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, "OTP", "Server Error")
			return
		}
		expires := time.Now().Add(otpValidity)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		field := "phone"
		if byEmail {
			field = "email"
		}

		// Upsert keeps lookup and lazy creation in one write; a second
		// in-flight request simply overwrites the code, and only the most
		// recent one verifies.
		now := time.Now()
		_, err = db.Collection("users").UpdateOne(ctx,
			bson.M{field: identifier},
			bson.M{
				"$set": bson.M{
					"otp":        code,
					"otpExpires": expires,
					"updatedAt":  now,
				},
				"$setOnInsert": bson.M{
					field:       identifier,
					"addresses": []models.Address{},
					"createdAt": now,
				},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Println("[OTP] [ERROR] persist failed:", err)
			respondWithError(c, http.StatusInternalServerError, "OTP", "Server Error")
			return
		}

		if byEmail {
			subject := "Your Login OTP"
			body := fmt.Sprintf("Your OTP is: %s. It is valid for 10 minutes.", code)
			if err := email.SendEmail(ctx, identifier, subject, body); err != nil {
				log.Println("[OTP] [ERROR] email dispatch failed:", err)
				respondWithError(c, http.StatusInternalServerError, "OTP", "Failed to send OTP email")
				return
			}
			log.Println("[OTP] [INFO] code sent via email")
			c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
			return
		}

		body := fmt.Sprintf("Your OTP is: %s. It is valid for 10 minutes.", code)
		if err := sms.SendSMS(ctx, identifier, body); err != nil {
			log.Println("[OTP] [ERROR] sms dispatch failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Failed to send SMS OTP",
				"details": err.Error(),
			})
			return
		}
		log.Println("[OTP] [INFO] code sent via sms")
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully via SMS"})
	}
}

// VerifyOTP checks the supplied code against the stored one, clears it on
// success (single-use), and issues a customer session token.
func VerifyOTP(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "OTP", "OTP is required")
			return
		}

		identifier, byEmail, ok := normalizeIdentifier(req.Email, req.Phone)
		if !ok {
			respondWithError(c, http.StatusBadRequest, "OTP", "Email or Phone is required")
			return
		}

		field := "phone"
		if byEmail {
			field = "email"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{field: identifier}).Decode(&user)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[OTP] [ERROR] verify lookup failed:", err)
				respondWithError(c, http.StatusInternalServerError, "OTP", "Server Error")
				return
			}
			respondWithError(c, http.StatusNotFound, "OTP", "User not found")
			return
		}

		if !otpMatches(user.OTP, user.OTPExpires, strings.TrimSpace(req.OTP), time.Now()) {
			respondWithError(c, http.StatusBadRequest, "OTP", "Invalid or expired OTP")
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$unset": bson.M{"otp": "", "otpExpires": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[OTP] [ERROR] clear code failed:", err)
			respondWithError(c, http.StatusInternalServerError, "OTP", "Server Error")
			return
		}

		token, err := issueToken(user.ID.Hex(), middleware.RoleCustomer, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[OTP] [ERROR] token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, "OTP", "Token generation failed")
			return
		}

		log.Println("[OTP] [INFO] customer verified")
		c.JSON(http.StatusOK, gin.H{
			"_id":   user.ID.Hex(),
			"email": user.Email,
			"phone": user.Phone,
			"token": token,
		})
	}
}

// normalizeIdentifier picks the lookup identifier. When both are supplied the
// email path wins.
func normalizeIdentifier(email, phone string) (identifier string, byEmail bool, ok bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if email != "" {
		return email, true, true
	}
	if phone != "" {
		return phone, false, true
	}
	return "", false, false
}

// generateOTP draws a uniformly random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// otpMatches reports whether the supplied code is the outstanding one and the
// expiry has not elapsed. A mismatch leaves the stored code untouched; only a
// successful verify or a new issuance replaces it.
func otpMatches(stored string, expires *time.Time, supplied string, now time.Time) bool {
	if stored == "" || expires == nil || supplied == "" {
		return false
	}
	return stored == supplied && now.Before(*expires)
}

func issueToken(id, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
