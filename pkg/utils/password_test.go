package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashVerify(t *testing.T) {
	b := Bcrypt{}
	h, err := b.Hash("abc123!@#")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123!@#", h)

	assert.True(t, b.Verify("abc123!@#", h))
	assert.False(t, b.Verify("wrong", h))
}

func TestLegacyHelpers(t *testing.T) {
	h := HashPassword("abc123!@#")
	assert.True(t, CheckPassword("abc123!@#", h))
	assert.False(t, CheckPassword("wrong", h))
}
