package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "u-1", "a@b.com", "USER", "Alice Example", 7)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}

	claims, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@b.com" || claims.Role != "USER" || claims.Name != "Alice Example" {
		t.Errorf("claims mismatch: %+v", claims)
	}

	// Expiry is 7 days out, give or take a minute.
	want := time.Now().UTC().Add(7 * 24 * time.Hour)
	if got := claims.ExpiresAt.Time; got.Before(want.Add(-time.Minute)) || got.After(want.Add(time.Minute)) {
		t.Errorf("expiry = %v, want ~%v", got, want)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "u-1", "a@b.com", "USER", "Alice", 7)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken("another-secret", tok.Token); err != ErrInvalidToken {
		t.Errorf("wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	// Sign an already-expired token by hand.
	claims := AccessClaims{
		UserID: "u-1", Email: "a@b.com", Role: "ADMIN", Name: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC().Add(-2 * time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	// The embedded ADMIN role must not matter once the token is expired.
	if _, err := ParseAccessToken(testSecret, raw); err != ErrInvalidToken {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenTampered(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "u-1", "a@b.com", "USER", "Alice", 7)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	raw := tok.Token
	suffix := "xx"
	if raw[len(raw)-2:] == suffix {
		suffix = "yy"
	}
	tampered := raw[:len(raw)-2] + suffix
	if _, err := ParseAccessToken(testSecret, tampered); err != ErrInvalidToken {
		t.Errorf("tampered token: got %v, want ErrInvalidToken", err)
	}
	if _, err := ParseAccessToken(testSecret, "not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("garbage token: got %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must not pass.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "u-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, raw); err != ErrInvalidToken {
		t.Errorf("alg=none token: got %v, want ErrInvalidToken", err)
	}
}
