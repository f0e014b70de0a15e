package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, id, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return signed
}

func runGuard(t *testing.T, guard gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	guard(c)
	return w, c
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	token := signToken(t, primitive.NewObjectID().Hex(), RoleAdmin, time.Hour)
	w, c := runGuard(t, AdminAuth(testSecret), "Bearer "+token)

	if c.IsAborted() {
		t.Fatalf("expected admin token to pass, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminAuthRejectsCustomerToken(t *testing.T) {
	token := signToken(t, primitive.NewObjectID().Hex(), RoleCustomer, time.Hour)
	w, _ := runGuard(t, AdminAuth(testSecret), "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for customer token on admin route, got %d", w.Code)
	}
}

func TestAdminAuthRejectsMissingAndMalformed(t *testing.T) {
	if w, _ := runGuard(t, AdminAuth(testSecret), ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", w.Code)
	}
	if w, _ := runGuard(t, AdminAuth(testSecret), "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", w.Code)
	}
	if w, _ := runGuard(t, AdminAuth(testSecret), "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	token := signToken(t, primitive.NewObjectID().Hex(), RoleAdmin, -time.Minute)
	w, _ := runGuard(t, AdminAuth(testSecret), "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestCustomerAuthInjectsUserID(t *testing.T) {
	id := primitive.NewObjectID()
	token := signToken(t, id.Hex(), RoleCustomer, time.Hour)
	w, c := runGuard(t, CustomerAuth(testSecret), "Bearer "+token)

	if c.IsAborted() {
		t.Fatalf("expected customer token to pass, got %d: %s", w.Code, w.Body.String())
	}

	value, ok := c.Get("userId")
	if !ok {
		t.Fatal("expected userId in context")
	}
	if got, ok := value.(primitive.ObjectID); !ok || got != id {
		t.Fatalf("expected userId %s, got %v", id.Hex(), value)
	}
}

func TestCustomerAuthRejectsAdminToken(t *testing.T) {
	token := signToken(t, primitive.NewObjectID().Hex(), RoleAdmin, time.Hour)
	w, _ := runGuard(t, CustomerAuth(testSecret), "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for admin token on customer route, got %d", w.Code)
	}
}

func TestCustomerAuthRejectsBadIDClaim(t *testing.T) {
	token := signToken(t, "not-an-object-id", RoleCustomer, time.Hour)
	w, _ := runGuard(t, CustomerAuth(testSecret), "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid id claim, got %d", w.Code)
	}
}
