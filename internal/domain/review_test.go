package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	r, err := NewReview("lovely place", 4, "place-1", "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, "place-1", r.PlaceID)
}

func TestNewReviewValidation(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		rating  int
		placeID string
		userID  string
		field   string
	}{
		{"missing text", "", 3, "p", "u", "text"},
		{"rating below range", "ok", 0, "p", "u", "rating"},
		{"rating above range", "ok", 6, "p", "u", "rating"},
		{"missing place", "ok", 3, "", "u", "place_id"},
		{"missing user", "ok", 3, "p", "", "user_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReview(tc.text, tc.rating, tc.placeID, tc.userID)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestReviewApplyUpdate(t *testing.T) {
	r, err := NewReview("ok", 3, "place-1", "user-1")
	require.NoError(t, err)

	// rating 必须是整数值；5.0 可以，5.5 不行
	require.NoError(t, r.ApplyUpdate(map[string]any{"rating": float64(5), "text": "amazing"}))
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, "amazing", r.Text)

	var ve *ValidationError
	require.ErrorAs(t, r.ApplyUpdate(map[string]any{"rating": 5.5}), &ve)
	assert.Equal(t, "rating", ve.Field)

	// 归属不可改
	require.ErrorAs(t, r.ApplyUpdate(map[string]any{"place_id": "p2"}), &ve)
	require.ErrorAs(t, r.ApplyUpdate(map[string]any{"user_id": "u2"}), &ve)
	assert.Equal(t, "place-1", r.PlaceID)
	assert.Equal(t, "user-1", r.UserID)
}
