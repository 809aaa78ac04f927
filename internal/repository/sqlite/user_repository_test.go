package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-api/internal/domain"
	"account-api/internal/repository"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func newUser(email string) *domain.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         "John Doe",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Gender:       domain.GenderMale,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("john@test.com")
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byID.ID)
	assert.Equal(t, user.Email, byID.Email)
	assert.Equal(t, user.PasswordHash, byID.PasswordHash)
	assert.Equal(t, user.Gender, byID.Gender)
	assert.True(t, user.CreatedAt.Equal(byID.CreatedAt))

	byEmail, err := repo.GetByEmail(ctx, "john@test.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@test.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("john@test.com")))

	err := repo.Create(ctx, newUser("john@test.com"))
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "john@test.com")
}

func TestUserRepository_ConcurrentCreatesOneWinner(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newUser("race@test.com"))
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, repository.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, successes)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("john@test.com")
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "John Q. Doe"
	user.Email = "john.q@test.com"
	user.Gender = domain.GenderNeutral
	user.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Q. Doe", got.Name)
	assert.Equal(t, "john.q@test.com", got.Email)
	assert.Equal(t, domain.GenderNeutral, got.Gender)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))
}

func TestUserRepository_UpdateEmailCollision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	john := newUser("john@test.com")
	require.NoError(t, repo.Create(ctx, john))
	require.NoError(t, repo.Create(ctx, newUser("jane@test.com")))

	// colliding with a different row
	john.Email = "jane@test.com"
	require.ErrorIs(t, repo.Update(ctx, john), repository.ErrDuplicateEmail)

	// rewriting its own email is not a collision
	john.Email = "john@test.com"
	require.NoError(t, repo.Update(ctx, john))
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update(context.Background(), newUser("ghost@test.com"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("john@test.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, user.ID), repository.ErrNotFound)
}

func TestUserRepository_ListInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := newUser("first@test.com")
	second := newUser("second@test.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
}
