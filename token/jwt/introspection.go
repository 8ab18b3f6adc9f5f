package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/ular-tangga-admin/internal/utils"
)

// NowTimeFunc is swapped in tests
var NowTimeFunc = time.Now

// TokenIntrospection is what the admin client can read from a session token
// without the issuer's key. The signature is NOT verified; the collaborator
// API stays the only authority on whether a token is valid.
type TokenIntrospection struct {
	Subject   string
	Issuer    string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an exp claim in the past
func (t *TokenIntrospection) Expired() bool {
	if t == nil || t.ExpiresAt.IsZero() {
		return false
	}
	return NowTimeFunc().After(t.ExpiresAt)
}

// Introspect decodes the claims of a JWT-shaped token. Opaque tokens return
// an error and should simply be treated as carrying no metadata.
func Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("empty token")
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, err
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}

	ti := &TokenIntrospection{}
	ti.Subject, _ = claims.GetSubject()
	ti.Issuer, _ = claims.GetIssuer()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ti.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		ti.IssuedAt = iat.Time
	}
	ti.Roles = utils.ClaimStrings(claims["roles"])

	return ti, nil
}
