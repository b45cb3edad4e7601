package hasher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)
	ctx := context.Background()

	first, err := h.Hash(ctx, "Passw0rd!")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "Passw0rd!")
	require.NoError(t, err)

	assert.NotEqual(t, "Passw0rd!", first)
	assert.NotEqual(t, first, second)
}

func TestBcrypt_Verify(t *testing.T) {
	h := New(bcrypt.MinCost)
	ctx := context.Background()

	tests := []struct {
		name      string
		plaintext string
		candidate string
		want      bool
	}{
		{"same password", "Passw0rd!", "Passw0rd!", true},
		{"different password", "Passw0rd!", "passw0rd!", false},
		{"empty candidate", "Passw0rd!", "", false},
		{"unicode", "пароль-секрет", "пароль-секрет", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(ctx, tt.plaintext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Verify(ctx, tt.candidate, digest))
		})
	}
}

func TestBcrypt_VerifyMalformedDigest(t *testing.T) {
	h := New(bcrypt.MinCost)
	assert.False(t, h.Verify(context.Background(), "Passw0rd!", "not-a-digest"))
}

func TestNew_Cost(t *testing.T) {
	assert.Equal(t, DefaultCost, New(0).cost)
	assert.Equal(t, DefaultCost, New(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, New(bcrypt.MinCost).cost)

	digest, err := New(DefaultCost).Hash(context.Background(), "Passw0rd!")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}
