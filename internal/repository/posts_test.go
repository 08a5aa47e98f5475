package repository

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryCreate(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewPostRepository(tx)

	t.Run("with caption", func(t *testing.T) {
		caption := "first snow"
		post, err := repo.Create(ctx, CreatePostParams{
			Username:  "carla",
			ImageFile: "snow.jpg",
			Caption:   &caption,
		})
		require.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, 1002, post.UserID)
		assert.Equal(t, "snow.jpg", post.ImageFile)
		require.NotNil(t, post.Caption)
		assert.Equal(t, "first snow", *post.Caption)
		assert.False(t, post.DatePosted.IsZero())
	})

	t.Run("caption optional", func(t *testing.T) {
		post, err := repo.Create(ctx, CreatePostParams{
			Username:  "carla",
			ImageFile: "plain.jpg",
		})
		require.NoError(t, err)
		assert.Nil(t, post.Caption)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := repo.Create(ctx, CreatePostParams{
			Username:  "nobody",
			ImageFile: "ghost.jpg",
		})
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestPostRepositoryFindAll(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewPostRepository(tx)

	posts, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Newest first, with id as tiebreaker.
	assert.False(t, posts[0].DatePosted.Before(posts[1].DatePosted))
	assert.Equal(t, 501, posts[0].ID)
	assert.Equal(t, "bob", posts[0].Username)
	assert.Equal(t, "alice", posts[1].Username)
}

func TestPostRepositoryGet(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewPostRepository(tx)

	t.Run("existing post", func(t *testing.T) {
		post, err := repo.Get(ctx, 500)
		require.NoError(t, err)
		assert.Equal(t, "sunset.jpg", post.ImageFile)
		assert.Equal(t, 1000, post.UserID)
		assert.Equal(t, "alice", post.Username)

		require.Len(t, post.Likes, 1)
		assert.Equal(t, "bob", post.Likes[0].Username)

		require.Len(t, post.Comments, 1)
		assert.Equal(t, PostComment{ID: 700, Comment: "love the colors", Username: "carla"}, post.Comments[0])
	})

	t.Run("post without engagement has empty lists", func(t *testing.T) {
		post, err := repo.Get(ctx, 501)
		require.NoError(t, err)
		assert.NotNil(t, post.Likes)
		assert.Empty(t, post.Likes)
		assert.NotNil(t, post.Comments)
		assert.Empty(t, post.Comments)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := repo.Get(ctx, 9999)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestPostRepositoryGetLikes(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewPostRepository(tx)

	t.Run("liked post", func(t *testing.T) {
		likes, err := repo.GetLikes(ctx, 500)
		require.NoError(t, err)
		assert.Equal(t, []PostLike{{UserID: 1001, Username: "bob"}}, likes)
	})

	t.Run("post with no likes yields empty list", func(t *testing.T) {
		likes, err := repo.GetLikes(ctx, 501)
		require.NoError(t, err)
		assert.Empty(t, likes)
		assert.NotNil(t, likes)
	})

	t.Run("unknown post yields empty list, not an error", func(t *testing.T) {
		likes, err := repo.GetLikes(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, likes)
		assert.NotNil(t, likes)
	})
}

func TestPostRepositoryRemove(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewPostRepository(tx)

	t.Run("removes post and engagement cascades", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, 500))

		_, err := repo.Get(ctx, 500)
		require.Error(t, err)

		likes, err := repo.GetLikes(ctx, 500)
		require.NoError(t, err)
		assert.Empty(t, likes)

		comments, err := NewEngagementRepository(tx).ListComments(ctx, 500)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("unknown post", func(t *testing.T) {
		err := repo.Remove(ctx, 9999)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}
