package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimStrings(t *testing.T) {
	tests := []struct {
		name  string
		claim any
		want  []string
	}{
		{name: "single", claim: "admin", want: []string{"admin"}},
		{name: "empty string", claim: "", want: nil},
		{name: "list", claim: []any{"admin", 7, "guru"}, want: []string{"admin", "guru"}},
		{name: "string list", claim: []string{"admin"}, want: []string{"admin"}},
		{name: "missing", claim: nil, want: nil},
		{name: "number", claim: 3.0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClaimStrings(tt.claim))
		})
	}
}
