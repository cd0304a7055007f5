package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmenity(t *testing.T) {
	a, err := NewAmenity("Wi-Fi", "wireless internet")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Wi-Fi", a.Name)

	_, err = NewAmenity("", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, err = NewAmenity(strings.Repeat("x", 51), "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	// 按字符数算长度
	_, err = NewAmenity(strings.Repeat("茶", 50), "")
	assert.NoError(t, err)
}

func TestAmenityApplyUpdate(t *testing.T) {
	a, err := NewAmenity("Wi-Fi", "")
	require.NoError(t, err)

	require.NoError(t, a.ApplyUpdate(map[string]any{"name": "Parking", "description": "on-site"}))
	assert.Equal(t, "Parking", a.Name)
	assert.Equal(t, "on-site", a.Description)

	var ve *ValidationError
	require.ErrorAs(t, a.ApplyUpdate(map[string]any{"name": ""}), &ve)
	assert.Equal(t, "Parking", a.Name)
}
