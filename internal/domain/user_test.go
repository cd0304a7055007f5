package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Jane", "Doe", "jane@example.com", "hashed", false)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestNewUserValidation(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name  string
		first string
		last  string
		email string
		field string
	}{
		{"missing first name", "", "Doe", "a@b.co", "first_name"},
		{"first name too long", string(long), "Doe", "a@b.co", "first_name"},
		{"missing last name", "Jane", "", "a@b.co", "last_name"},
		{"missing email", "Jane", "Doe", "", "email"},
		{"email without at", "Jane", "Doe", "invalid", "email"},
		{"email without dot in domain", "Jane", "Doe", "a@nodot", "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.first, tc.last, tc.email, "hashed", false)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestUserNameLengthCountsRunes(t *testing.T) {
	// 30 个多字节字符在 50 字符限内，哪怕超过 50 字节
	name := strings.Repeat("雨", 30)
	u, err := NewUser(name, "Doe", "a@b.co", "hashed", false)
	require.NoError(t, err)
	assert.Equal(t, name, u.FirstName)

	_, err = NewUser(strings.Repeat("雨", 51), "Doe", "a@b.co", "hashed", false)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "first_name", ve.Field)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abc123!@#"))

	for name, pw := range map[string]string{
		"too short":  "a1!",
		"no digit":   "abcdefg!",
		"no letter":  "1234567!",
		"no symbol":  "abcd1234",
		"whitespace": "abc 1234", // 空格不算特殊字符
	} {
		t.Run(name, func(t *testing.T) {
			var ve *ValidationError
			require.ErrorAs(t, ValidatePassword(pw), &ve)
			assert.Equal(t, "password", ve.Field)
		})
	}
}

func TestUserApplyUpdate(t *testing.T) {
	u, err := NewUser("Jane", "Doe", "jane@example.com", "hashed", false)
	require.NoError(t, err)

	err = u.ApplyUpdate(map[string]any{"first_name": "Janet", "email": "janet@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Janet", u.FirstName)
	assert.Equal(t, "janet@example.com", u.Email)
	assert.True(t, u.UpdatedAt.After(u.CreatedAt) || u.UpdatedAt.Equal(u.CreatedAt))
}

func TestUserApplyUpdateRejectsUnknownKey(t *testing.T) {
	u, err := NewUser("Jane", "Doe", "jane@example.com", "hashed", false)
	require.NoError(t, err)

	var ve *ValidationError
	require.ErrorAs(t, u.ApplyUpdate(map[string]any{"nickname": "JJ"}), &ve)
	assert.Equal(t, "nickname", ve.Field)
}

func TestUserApplyUpdateAtomic(t *testing.T) {
	u, err := NewUser("Jane", "Doe", "jane@example.com", "hashed", false)
	require.NoError(t, err)

	// email 会失败，first_name 也不能落下去
	err = u.ApplyUpdate(map[string]any{"first_name": "Janet", "email": "broken"})
	require.Error(t, err)
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "jane@example.com", u.Email)
}
