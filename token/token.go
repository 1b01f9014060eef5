// Package token reads the claims embedded in a compact bearer token.
//
// Decoding never verifies the signature: the server is the sole
// authority on token validity, and the client only uses claims for
// session-expiry bookkeeping. A token whose claims cannot be read is
// still usable — the session simply proceeds with an unknown expiry.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	rentadmin "github.com/fleetly/rentadmin-go"
)

// ExpiryMargin is subtracted from the token's exp claim so a token is
// never presented in the last minute before its real expiry.
const ExpiryMargin = time.Minute

// Decode parses a three-segment compact token and returns the claims
// from its payload segment. It returns an error when the token does not
// have three segments, the payload is not valid base64url, or the
// decoded payload is not valid JSON. It never panics.
func Decode(tok string) (*rentadmin.Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, mapClaims); err != nil {
		return nil, fmt.Errorf("rentadmin/token: %w", err)
	}
	return mapToClaims(mapClaims), nil
}

// ExpiryOf returns the effective client-side expiry for the claims:
// the exp claim minus ExpiryMargin. The zero time is returned when the
// claims are nil or carry no numeric exp, meaning expiry cannot be
// enforced client-side for this session.
func ExpiryOf(c *rentadmin.Claims) time.Time {
	if c == nil || c.ExpiresAt.IsZero() {
		return time.Time{}
	}
	return c.ExpiresAt.Add(-ExpiryMargin)
}

// mapToClaims converts jwt.MapClaims to rentadmin.Claims.
func mapToClaims(m jwt.MapClaims) *rentadmin.Claims {
	c := &rentadmin.Claims{
		Extra: make(map[string]any),
	}

	if v, ok := m["sub"].(string); ok {
		c.Subject = v
	}
	if v, ok := m["email"].(string); ok {
		c.Email = v
	}
	if v, ok := m["iss"].(string); ok {
		c.Issuer = v
	}
	if v, ok := m["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(v), 0)
	}
	if v, ok := m["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(v), 0)
	}

	// Non-standard claims go to Extra
	standard := map[string]bool{
		"sub": true, "email": true, "iss": true,
		"exp": true, "iat": true, "aud": true, "nbf": true, "jti": true,
	}
	for k, v := range m {
		if !standard[k] {
			c.Extra[k] = v
		}
	}

	return c
}
