package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlace(t *testing.T) *Place {
	t.Helper()
	p, err := NewPlace("Cozy Loft", "downtown loft", 120.0, 48.85, 2.35, "owner-1", nil)
	require.NoError(t, err)
	return p
}

func TestNewPlace(t *testing.T) {
	p := newTestPlace(t)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Cozy Loft", p.Title)
	assert.Empty(t, p.Amenities)
	assert.Empty(t, p.Reviews)
}

func TestNewPlaceValidation(t *testing.T) {
	cases := []struct {
		name  string
		title string
		price float64
		lat   float64
		lon   float64
		field string
	}{
		{"missing title", "", 10, 0, 0, "title"},
		{"title too long", strings.Repeat("x", 101), 10, 0, 0, "title"},
		{"zero price", "T", 0, 0, 0, "price"},
		{"negative price", "T", -5, 0, 0, "price"},
		{"latitude too low", "T", 10, -90.5, 0, "latitude"},
		{"latitude too high", "T", 10, 90.5, 0, "latitude"},
		{"longitude too low", "T", 10, 0, -180.5, "longitude"},
		{"longitude too high", "T", 10, 0, 180.5, "longitude"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPlace(tc.title, "", tc.price, tc.lat, tc.lon, "owner-1", nil)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	t.Run("missing owner", func(t *testing.T) {
		_, err := NewPlace("T", "", 10, 0, 0, "", nil)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "owner_id", ve.Field)
	})

	t.Run("title length counts runes", func(t *testing.T) {
		_, err := NewPlace(strings.Repeat("宿", 100), "", 10, 0, 0, "owner-1", nil)
		assert.NoError(t, err)
		_, err = NewPlace(strings.Repeat("宿", 101), "", 10, 0, 0, "owner-1", nil)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Field)
	})

	t.Run("boundary coordinates accepted", func(t *testing.T) {
		_, err := NewPlace("T", "", 10, 90, 180, "owner-1", nil)
		assert.NoError(t, err)
		_, err = NewPlace("T", "", 10, -90, -180, "owner-1", nil)
		assert.NoError(t, err)
	})
}

func TestPlaceAddAmenityIdempotent(t *testing.T) {
	p := newTestPlace(t)
	wifi, err := NewAmenity("Wi-Fi", "")
	require.NoError(t, err)

	p.AddAmenity(wifi)
	p.AddAmenity(wifi) // 重复追加是空操作
	assert.Len(t, p.Amenities, 1)
	assert.True(t, p.HasAmenity(wifi.ID))

	assert.True(t, p.RemoveAmenity(wifi.ID))
	assert.False(t, p.RemoveAmenity(wifi.ID))
	assert.Empty(t, p.Amenities)
}

func TestPlaceAddReview(t *testing.T) {
	p := newTestPlace(t)
	r, err := NewReview("great stay", 5, p.ID, "user-1")
	require.NoError(t, err)

	require.NoError(t, p.AddReview(r))
	require.NoError(t, p.AddReview(r)) // 重复挂接是空操作
	assert.Len(t, p.Reviews, 1)

	assert.True(t, p.RemoveReview(r.ID))
	assert.Empty(t, p.Reviews)
}

func TestPlaceAddReviewWrongPlace(t *testing.T) {
	p := newTestPlace(t)
	r, err := NewReview("great stay", 5, "some-other-place", "user-1")
	require.NoError(t, err)

	var ve *ValidationError
	require.ErrorAs(t, p.AddReview(r), &ve)
	assert.Equal(t, "place_id", ve.Field)
	assert.Empty(t, p.Reviews)
}

func TestPlaceApplyUpdate(t *testing.T) {
	p := newTestPlace(t)

	// JSON 解出来的数字是 float64
	require.NoError(t, p.ApplyUpdate(map[string]any{"price": float64(200), "title": "Bigger Loft"}))
	assert.Equal(t, 200.0, p.Price)
	assert.Equal(t, "Bigger Loft", p.Title)

	var ve *ValidationError
	require.ErrorAs(t, p.ApplyUpdate(map[string]any{"price": -1.0}), &ve)
	assert.Equal(t, "price", ve.Field)
	assert.Equal(t, 200.0, p.Price)

	require.ErrorAs(t, p.ApplyUpdate(map[string]any{"owner_id": "someone-else"}), &ve)
	assert.Equal(t, "owner_id", ve.Field)
}
