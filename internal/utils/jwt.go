package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error for rejected tokens
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for any token that fails
// signature, structure or expiry checks. Callers translate it to 401.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the typed payload of a session token. It embeds exactly
// the four identity fields the platform works with (id, email, role, name)
// plus the registered exp/iat claims. Tokens are self-contained: nothing is
// persisted server-side, and the claims — including Role — are trusted for
// the token's lifetime. A role change on the server therefore only takes
// effect once already-issued tokens expire; that is a deliberate trade-off
// of the stateless session model, not a bug.
type AccessClaims struct {
	UserID string `json:"id"`    // user primary key
	Email  string `json:"email"` // user email at issue time
	Role   string `json:"role"`  // ADMIN | USER | STORE_OWNER
	Name   string `json:"name"`  // display name at issue time
	jwt.RegisteredClaims
}

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. The token is sent in the Authorization header
// when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT embedding the given identity.
// ttlDays controls how long the session lives (7 days in production).
func NewAccessToken(secret, userID, email, role, name string, ttlDays int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := AccessClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry of a raw token string and
// returns its typed claims. Any failure — wrong algorithm, bad signature,
// expired, malformed — collapses into ErrInvalidToken; callers do not need
// to distinguish why a token was rejected.
func ParseAccessToken(secret, raw string) (*AccessClaims, error) {
	var claims AccessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is acceptable; reject tokens signed with anything else.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
