package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "assustadus/internal/domain/user"
)

func TestUserRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	u := &dom.User{Email: "test@example.com", FirstName: "John", LastName: "Doe"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, *u, *got)

	name := "Jane"
	updated, err := repo.Update(ctx, u.ID, dom.Patch{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))

	byEmail, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), dom.ErrNotFound)
}

func TestUserRepository_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, e := range emails {
		require.NoError(t, repo.Create(ctx, &dom.User{Email: e, FirstName: "F", LastName: "L"}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, e := range emails {
		assert.Equal(t, e, list[i].Email)
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &dom.User{Email: "test@example.com", FirstName: "John", LastName: "Doe"}
	require.NoError(t, repo.Create(ctx, u))

	u.FirstName = "Mutated"
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
}

func TestUserRepository_ClearPhone(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	phone := "1234567890"
	u := &dom.User{Email: "test@example.com", FirstName: "John", LastName: "Doe", Phone: &phone}
	require.NoError(t, repo.Create(ctx, u))

	updated, err := repo.Update(ctx, u.ID, dom.Patch{ClearPhone: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Phone)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
}
