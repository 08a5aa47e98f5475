package repository

import (
	"net/http"
	"testing"

	"github.com/pixelfeed/backend/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryAuthenticate(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := repo.Authenticate(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, 1000, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.IsAdmin)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		_, errWrongPass := repo.Authenticate(ctx, "alice", "nope")
		_, errNoUser := repo.Authenticate(ctx, "nobody", "nope")

		for _, err := range []error{errWrongPass, errNoUser} {
			httpErr := requireHTTPError(t, err)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
			assert.Equal(t, "Invalid username/password", httpErr.Message)
		}
	})
}

func TestUserRepositoryRegister(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := repo.Register(ctx, RegisterParams{
			Username:  "dana",
			Password:  "secret-pass",
			FirstName: "Dana",
			LastName:  "Diaz",
			Email:     "dana@example.com",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.False(t, user.IsAdmin)
		assert.Empty(t, user.PasswordHash)

		authed, err := repo.Authenticate(ctx, "dana", "secret-pass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, authed.ID)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := repo.Register(ctx, RegisterParams{
			Username:  "alice",
			Password:  "whatever1",
			FirstName: "Other",
			LastName:  "Alice",
			Email:     "alice2@example.com",
		})
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Contains(t, httpErr.Message, "alice")
	})
}

func TestUserRepositoryFindAll(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// Ordered by username ascending, hashes never exposed.
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carla", users[2].Username)
}

func TestUserRepositoryGet(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	t.Run("composite view", func(t *testing.T) {
		detail, err := repo.Get(ctx, "bob")
		require.NoError(t, err)

		assert.Equal(t, 1001, detail.ID)
		assert.Empty(t, detail.PasswordHash)
		require.Len(t, detail.Posts, 1)
		assert.Equal(t, 501, detail.Posts[0].ID)
		assert.Equal(t, []int{500}, detail.Likes)
		assert.Empty(t, detail.Comments)
		assert.Equal(t, []int{1000}, detail.Following)
		assert.Empty(t, detail.Followers)
	})

	t.Run("commenter view", func(t *testing.T) {
		detail, err := repo.Get(ctx, "carla")
		require.NoError(t, err)

		require.Len(t, detail.Comments, 1)
		assert.Equal(t, UserComment{PostID: 500, CommentID: 700, Comment: "love the colors"}, detail.Comments[0])
		assert.Empty(t, detail.Posts)
		assert.Empty(t, detail.Likes)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.Get(ctx, "nobody")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	t.Run("partial update leaves other fields intact", func(t *testing.T) {
		updated, err := repo.Update(ctx, "bob", map[string]any{
			"bio":       "espresso enthusiast",
			"firstName": "Robert",
		})
		require.NoError(t, err)
		assert.Equal(t, "Robert", updated.FirstName)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "espresso enthusiast", *updated.Bio)
		assert.Equal(t, "Brown", updated.LastName)
		assert.Equal(t, "bob@example.com", updated.Email)
	})

	t.Run("password update re-hashes", func(t *testing.T) {
		_, err := repo.Update(ctx, "bob", map[string]any{"password": "new-password"})
		require.NoError(t, err)

		_, err = repo.Authenticate(ctx, "bob", "new-password")
		require.NoError(t, err)

		_, err = repo.Authenticate(ctx, "bob", "password123")
		require.Error(t, err)
	})

	t.Run("last_modified advances", func(t *testing.T) {
		before, err := repo.Get(ctx, "carla")
		require.NoError(t, err)

		updated, err := repo.Update(ctx, "carla", map[string]any{"bio": "hi"})
		require.NoError(t, err)
		assert.False(t, updated.LastModified.Before(before.LastModified))
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := repo.Update(ctx, "bob", map[string]any{})
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.Update(ctx, "nobody", map[string]any{"bio": "hi"})
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("username collision surfaces as conflict", func(t *testing.T) {
		// The violation aborts the enclosing transaction, so run it
		// under a savepoint.
		nested, err := tx.Begin(ctx)
		require.NoError(t, err)
		defer nested.Rollback(ctx)

		_, err = NewUserRepository(nested, testHasher).Update(ctx, "carla", map[string]any{"username": "alice"})
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
	})
}

func TestUserRepositoryRemove(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	require.NoError(t, repo.Remove(ctx, "alice"))

	_, err := repo.Get(ctx, "alice")
	require.Error(t, err)

	// Owned posts and dependent edges cascade.
	posts := NewPostRepository(tx)
	_, err = posts.Get(ctx, 500)
	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	t.Run("removing again is not found", func(t *testing.T) {
		err := repo.Remove(ctx, "alice")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestUserRepositoryGetLikes(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewUserRepository(tx, testHasher)

	t.Run("liked posts", func(t *testing.T) {
		likes, err := repo.GetLikes(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, []LikedPost{{PostID: 500, ImageFile: "sunset.jpg"}}, likes)
	})

	t.Run("no likes yields empty list", func(t *testing.T) {
		likes, err := repo.GetLikes(ctx, "carla")
		require.NoError(t, err)
		assert.Empty(t, likes)
		assert.NotNil(t, likes)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.GetLikes(ctx, "nobody")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	return httpErr
}
