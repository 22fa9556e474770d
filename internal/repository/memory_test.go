package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/futureed/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:        domain.NewUserID(),
		Email:     email,
		Password:  "hash",
		FullName:  "A B",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	u := newUser("a@b.com")

	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "A B", byEmail.FullName)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "a@b.com", byID.Email)

	exists, err := repo.Exists(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryUserRepository_Missing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	u, err := repo.FindByEmail(ctx, "nobody@b.com")
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, u)

	exists, err := repo.Exists(ctx, "nobody@b.com")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryUserRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, newUser("a@b.com")))
	assert.ErrorIs(t, repo.Create(ctx, newUser("a@b.com")), ErrDuplicateEmail)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	u := newUser("a@b.com")
	require.NoError(t, repo.Create(ctx, u))

	found, _ := repo.FindByID(ctx, u.ID)
	found.FullName = "changed"

	again, _ := repo.FindByID(ctx, u.ID)
	assert.Equal(t, "A B", again.FullName)
}

func TestMemoryUserRepository_ConcurrentSignup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, newUser("race@b.com"))
		}()
	}
	wg.Wait()
	close(results)

	var created int
	for err := range results {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, created)
}
