package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staymarket/internal/domain"
)

func newUserRepo() *Memory[*domain.User] {
	return NewMemory[*domain.User](MemoryConfig{Kind: "user", Unique: []string{"email"}})
}

func mustUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser("Jane", "Doe", email, "hashed", false)
	require.NoError(t, err)
	return u
}

func TestMemoryAddGet(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()
	u := mustUser(t, "jane@example.com")

	require.NoError(t, r.Add(ctx, u))

	got, err := r.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)

	// 不存在返回 (nil, nil)，由 facade 决定要不要当错误
	missing, err := r.Get(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()
	u := mustUser(t, "jane@example.com")

	require.NoError(t, r.Add(ctx, u))
	var ce *domain.ConflictError
	require.ErrorAs(t, r.Add(ctx, u), &ce)
}

func TestMemoryUniqueAttribute(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()

	require.NoError(t, r.Add(ctx, mustUser(t, "jane@example.com")))

	dup := mustUser(t, "jane@example.com")
	var ce *domain.ConflictError
	require.ErrorAs(t, r.Add(ctx, dup), &ce)

	require.NoError(t, r.Add(ctx, mustUser(t, "other@example.com")))
}

func TestMemoryGetAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()

	var want []string
	for i := 0; i < 5; i++ {
		u := mustUser(t, fmt.Sprintf("u%d@example.com", i))
		require.NoError(t, r.Add(ctx, u))
		want = append(want, u.ID)
	}

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, u := range all {
		assert.Equal(t, want[i], u.ID)
	}
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()
	u := mustUser(t, "jane@example.com")
	require.NoError(t, r.Add(ctx, u))

	got, err := r.Update(ctx, u.ID, map[string]any{"first_name": "Janet"})
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)

	// 校验失败原样透传 ValidationError
	var ve *domain.ValidationError
	_, err = r.Update(ctx, u.ID, map[string]any{"email": "broken"})
	require.ErrorAs(t, err, &ve)

	// 未知 ID 返回 (nil, nil)
	none, err := r.Update(ctx, "no-such-id", map[string]any{"first_name": "X"})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()
	u := mustUser(t, "jane@example.com")
	require.NoError(t, r.Add(ctx, u))

	okDel, err := r.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, okDel)

	okDel, err = r.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, okDel)

	// 删除后唯一键可复用
	require.NoError(t, r.Add(ctx, mustUser(t, "jane@example.com")))
}

func TestMemoryFindByAttribute(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo()
	u := mustUser(t, "jane@example.com")
	require.NoError(t, r.Add(ctx, u))

	got, err := r.FindByAttribute(ctx, "email", "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	none, err := r.FindByAttribute(ctx, "email", "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemoryFindAllByAttribute(t *testing.T) {
	ctx := context.Background()
	r := NewMemory[*domain.Review](MemoryConfig{Kind: "review"})

	for i := 0; i < 3; i++ {
		rv, err := domain.NewReview("ok", 3, "place-1", fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		require.NoError(t, r.Add(ctx, rv))
	}
	other, err := domain.NewReview("ok", 3, "place-2", "user-9")
	require.NoError(t, err)
	require.NoError(t, r.Add(ctx, other))

	got, err := r.FindAllByAttribute(ctx, "place_id", "place-1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestMemoryGetAllCopyIsolation(t *testing.T) {
	ctx := context.Background()
	r := NewMemory[*domain.Place](MemoryConfig{Kind: "place"})

	p, err := domain.NewPlace("Loft", "", 10, 0, 0, "owner-1", nil)
	require.NoError(t, err)
	require.NoError(t, r.Add(ctx, p))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0] = nil // 改返回的切片不影响存储

	again, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.NotNil(t, again[0])
}
