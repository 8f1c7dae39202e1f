package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("secret", "lead-studio", "user-42", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ParseJWT("secret", "lead-studio", token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims.Principal != "user-42" {
		t.Errorf("expected principal user-42, got %s", claims.Principal)
	}
	if claims.Subject != "user-42" {
		t.Errorf("expected subject user-42, got %s", claims.Subject)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT("secret", "lead-studio", "user-42", time.Hour)

	if _, err := ParseJWT("other", "lead-studio", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseJWT_WrongIssuer(t *testing.T) {
	token, _ := GenerateJWT("secret", "someone-else", "user-42", time.Hour)

	if _, err := ParseJWT("secret", "lead-studio", token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	claims := Claims{
		Principal: "user-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("secret", "", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseJWT_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{Principal: "user-42"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("secret", "", token); err == nil {
		t.Fatal("expected error for unsigned token")
	}
}

func TestGenerateJWT_RequiresPrincipal(t *testing.T) {
	if _, err := GenerateJWT("secret", "lead-studio", "", time.Hour); err == nil {
		t.Fatal("expected error for empty principal")
	}
}
