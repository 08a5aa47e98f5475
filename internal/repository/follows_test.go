package repository

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepositoryFollow(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewFollowRepository(tx)

	t.Run("creates edge", func(t *testing.T) {
		edge, err := repo.Follow(ctx, "carla", 1000)
		require.NoError(t, err)
		assert.Equal(t, &FollowEdge{FollowingID: 1002, FollowedID: 1000}, edge)
	})

	t.Run("duplicate edge conflicts", func(t *testing.T) {
		_, err := repo.Follow(ctx, "bob", 1000)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
	})

	t.Run("self-follow conflicts", func(t *testing.T) {
		_, err := repo.Follow(ctx, "alice", 1000)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
	})

	t.Run("unknown follower", func(t *testing.T) {
		_, err := repo.Follow(ctx, "nobody", 1000)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := repo.Follow(ctx, "carla", 9999)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestFollowRepositoryUnfollow(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewFollowRepository(tx)

	t.Run("removes edge", func(t *testing.T) {
		require.NoError(t, repo.Unfollow(ctx, "bob", 1000))

		following, err := repo.Following(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, following)
	})

	t.Run("removing a nonexistent edge fails", func(t *testing.T) {
		err := repo.Unfollow(ctx, "carla", 1000)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown follower still fails", func(t *testing.T) {
		err := repo.Unfollow(ctx, "nobody", 1000)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestFollowRepositoryListings(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewFollowRepository(tx)

	t.Run("following", func(t *testing.T) {
		following, err := repo.Following(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, "alice", following[0].Username)
		assert.Equal(t, 1000, following[0].UserID)
		assert.Equal(t, "Alice", following[0].FirstName)
	})

	t.Run("followers", func(t *testing.T) {
		followers, err := repo.Followers(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, "bob", followers[0].Username)
	})

	t.Run("empty lists for unconnected user", func(t *testing.T) {
		following, err := repo.Following(ctx, "carla")
		require.NoError(t, err)
		assert.Empty(t, following)
		assert.NotNil(t, following)

		followers, err := repo.Followers(ctx, "carla")
		require.NoError(t, err)
		assert.Empty(t, followers)
		assert.NotNil(t, followers)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.Following(ctx, "nobody")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)

		_, err = repo.Followers(ctx, "nobody")
		httpErr = requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}
