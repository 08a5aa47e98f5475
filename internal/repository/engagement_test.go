package repository

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRepositoryAddLike(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewEngagementRepository(tx)

	t.Run("records like", func(t *testing.T) {
		like, err := repo.AddLike(ctx, "carla", 500)
		require.NoError(t, err)
		assert.Equal(t, &Like{UserID: 1002, PostID: 500}, like)
	})

	t.Run("duplicate like conflicts", func(t *testing.T) {
		_, err := repo.AddLike(ctx, "bob", 500)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.AddLike(ctx, "nobody", 500)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := repo.AddLike(ctx, "carla", 9999)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestEngagementRepositoryRemoveLike(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewEngagementRepository(tx)

	t.Run("removes existing like", func(t *testing.T) {
		require.NoError(t, repo.RemoveLike(ctx, "bob", 500))

		likes, err := NewPostRepository(tx).GetLikes(ctx, 500)
		require.NoError(t, err)
		assert.Empty(t, likes)
	})

	t.Run("removing a nonexistent like is a no-op", func(t *testing.T) {
		require.NoError(t, repo.RemoveLike(ctx, "carla", 500))
		require.NoError(t, repo.RemoveLike(ctx, "carla", 9999))
	})

	t.Run("unknown user still fails", func(t *testing.T) {
		err := repo.RemoveLike(ctx, "nobody", 500)
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestEngagementRepositoryAddComment(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewEngagementRepository(tx)

	t.Run("attaches comment", func(t *testing.T) {
		comment, err := repo.AddComment(ctx, "bob", 500, "great shot")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, 1001, comment.UserID)
		assert.Equal(t, 500, comment.PostID)
		assert.Equal(t, "great shot", comment.Comment)
		assert.False(t, comment.DatePosted.IsZero())
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.AddComment(ctx, "nobody", 500, "hello")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown post rejected by schema", func(t *testing.T) {
		// The FK violation aborts the enclosing transaction, so run it
		// under a savepoint.
		nested, err := tx.Begin(ctx)
		require.NoError(t, err)
		defer nested.Rollback(ctx)

		_, err = NewEngagementRepository(nested).AddComment(ctx, "bob", 9999, "orphan")
		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})
}

func TestEngagementRepositoryRemoveComment(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewEngagementRepository(tx)

	t.Run("removes by pair", func(t *testing.T) {
		require.NoError(t, repo.RemoveComment(ctx, 500, 700))

		comments, err := repo.ListComments(ctx, 500)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("mismatched post leaves comment alone", func(t *testing.T) {
		comment, err := repo.AddComment(ctx, "bob", 500, "mine")
		require.NoError(t, err)

		require.NoError(t, repo.RemoveComment(ctx, 501, comment.ID))

		comments, err := repo.ListComments(ctx, 500)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("unknown comment is a no-op", func(t *testing.T) {
		require.NoError(t, repo.RemoveComment(ctx, 500, 9999))
	})
}

func TestEngagementRepositoryListComments(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)
	repo := NewEngagementRepository(tx)

	t.Run("oldest first", func(t *testing.T) {
		_, err := repo.AddComment(ctx, "bob", 500, "second")
		require.NoError(t, err)

		comments, err := repo.ListComments(ctx, 500)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "love the colors", comments[0].Comment)
		assert.Equal(t, "second", comments[1].Comment)
	})

	t.Run("post without comments yields empty list", func(t *testing.T) {
		comments, err := repo.ListComments(ctx, 501)
		require.NoError(t, err)
		assert.Empty(t, comments)
		assert.NotNil(t, comments)
	})
}

// A full engagement flow: one author posts, a second user likes it, a
// third comments, and the composite views reflect all of it.
func TestEngagementFlow(t *testing.T) {
	ctx, tx := testTx(t)
	seed(t, ctx, tx)

	users := NewUserRepository(tx, testHasher)
	posts := NewPostRepository(tx)
	engagement := NewEngagementRepository(tx)

	post, err := posts.Create(ctx, CreatePostParams{Username: "alice", ImageFile: "trail.jpg"})
	require.NoError(t, err)

	_, err = engagement.AddLike(ctx, "bob", post.ID)
	require.NoError(t, err)

	comment, err := engagement.AddComment(ctx, "carla", post.ID, "nice")
	require.NoError(t, err)

	likes, err := posts.GetLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []PostLike{{UserID: 1001, Username: "bob"}}, likes)

	detail, err := posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Username)
	require.Len(t, detail.Likes, 1)
	assert.Equal(t, 1001, detail.Likes[0].UserID)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "nice", detail.Comments[0].Comment)
	assert.Equal(t, "carla", detail.Comments[0].Username)

	bob, err := users.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Contains(t, bob.Likes, post.ID)

	carla, err := users.Get(ctx, "carla")
	require.NoError(t, err)
	assert.Contains(t, carla.Comments, UserComment{PostID: post.ID, CommentID: comment.ID, Comment: "nice"})
}
