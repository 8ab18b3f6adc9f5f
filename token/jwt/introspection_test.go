package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/ular-tangga-admin/token/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestIntrospectJWT(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	raw := signedToken(t, jwtlib.MapClaims{
		"sub":   "42",
		"iss":   "ular-tangga",
		"exp":   exp.Unix(),
		"roles": []any{"admin", 7, "guru"},
	})

	ti, err := jwt.Introspect(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", ti.Subject)
	assert.Equal(t, "ular-tangga", ti.Issuer)
	assert.True(t, exp.Equal(ti.ExpiresAt))
	assert.Equal(t, []string{"admin", "guru"}, ti.Roles)
}

func TestIntrospectOpaqueToken(t *testing.T) {
	_, err := jwt.Introspect("12|opaque-sanctum-token")
	require.Error(t, err)

	_, err = jwt.Introspect("")
	require.Error(t, err)
}

func TestExpired(t *testing.T) {
	orig := jwt.NowTimeFunc
	defer func() { jwt.NowTimeFunc = orig }()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jwt.NowTimeFunc = func() time.Time { return now }

	var nilTI *jwt.TokenIntrospection
	assert.False(t, nilTI.Expired())
	assert.False(t, (&jwt.TokenIntrospection{}).Expired())
	assert.True(t, (&jwt.TokenIntrospection{ExpiresAt: now.Add(-time.Second)}).Expired())
	assert.False(t, (&jwt.TokenIntrospection{ExpiresAt: now.Add(time.Hour)}).Expired())
}
