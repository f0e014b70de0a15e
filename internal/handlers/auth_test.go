package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"backend/internal/middleware"
)

func TestGenerateOTPStaysInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := generateOTP()
		if err != nil {
			t.Fatalf("generateOTP returned error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code < "100000" || code > "999999" {
			t.Fatalf("code out of range: %q", code)
		}
	}
}

func TestOTPMatches(t *testing.T) {
	now := time.Now()
	expires := now.Add(otpValidity)

	if !otpMatches("123456", &expires, "123456", now) {
		t.Fatal("expected matching unexpired code to verify")
	}
	if otpMatches("123456", &expires, "654321", now) {
		t.Fatal("expected mismatched code to fail")
	}
	if otpMatches("123456", &expires, "123456", expires.Add(time.Second)) {
		t.Fatal("expected expired code to fail")
	}
	if otpMatches("123456", &expires, "123456", expires) {
		t.Fatal("expected code to fail at the expiry instant")
	}
}

func TestOTPMatchesAfterClear(t *testing.T) {
	// A cleared code (post-verify state) must never verify again.
	if otpMatches("", nil, "123456", time.Now()) {
		t.Fatal("expected cleared code to fail")
	}
	expires := time.Now().Add(otpValidity)
	if otpMatches("", &expires, "", time.Now()) {
		t.Fatal("expected empty supplied code to fail")
	}
}

func TestOTPReissueInvalidatesPriorCode(t *testing.T) {
	now := time.Now()
	expires := now.Add(otpValidity)

	// The stored code is always the most recent issuance; the first code no
	// longer matches once a second request overwrote it.
	if otpMatches("222222", &expires, "111111", now) {
		t.Fatal("expected overwritten code to fail verification")
	}
	if !otpMatches("222222", &expires, "222222", now) {
		t.Fatal("expected latest code to verify")
	}
}

func TestNormalizeIdentifierPrefersEmail(t *testing.T) {
	identifier, byEmail, ok := normalizeIdentifier(" A@B.com ", "12345")
	if !ok || !byEmail || identifier != "a@b.com" {
		t.Fatalf("expected lowercased email path, got %q byEmail=%v ok=%v", identifier, byEmail, ok)
	}

	identifier, byEmail, ok = normalizeIdentifier("", " 12345 ")
	if !ok || byEmail || identifier != "12345" {
		t.Fatalf("expected phone path, got %q byEmail=%v ok=%v", identifier, byEmail, ok)
	}

	if _, _, ok := normalizeIdentifier(" ", ""); ok {
		t.Fatal("expected missing identifier to be rejected")
	}
}

func TestIssueTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	signed, err := issueToken("65f000000000000000000001", middleware.RoleCustomer, secret, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("issueToken returned error: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected token to parse, err=%v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["id"] != "65f000000000000000000001" {
		t.Fatalf("unexpected id claim: %v", claims["id"])
	}
	if claims["role"] != middleware.RoleCustomer {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}
