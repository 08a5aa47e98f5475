package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/sqlerr"
)

// Like is one like edge between a user and a post.
type Like struct {
	UserID int `json:"userId"`
	PostID int `json:"postId"`
}

// Comment is one comment on a post.
type Comment struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	PostID     int       `json:"postId"`
	Comment    string    `json:"comment"`
	DatePosted time.Time `json:"datePosted"`
}

// EngagementRepository owns like and comment edges between users and
// posts.
type EngagementRepository struct {
	db DBTX
}

// NewEngagementRepository constructs an EngagementRepository on the
// given storage handle.
func NewEngagementRepository(db DBTX) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// AddLike records that a user liked a post. Preconditions run in
// order: the user must exist, the post must exist, and the pair must
// not already be liked. The UNIQUE(user_id, post_id) constraint
// backstops the duplicate check under concurrency; a violation
// surfaces as the same conflict error.
func (r *EngagementRepository) AddLike(ctx context.Context, username string, postID int) (*Like, error) {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	exists, err := postExists(ctx, r.db, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewNotFoundError(fmt.Sprintf("No post: %d", postID), true, nil)
	}

	var liked bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`,
		userID, postID,
	).Scan(&liked)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if liked {
		return nil, errs.NewConflictError(
			fmt.Sprintf("%s already likes post %d", username, postID), true, nil)
	}

	var like Like
	err = r.db.QueryRow(ctx,
		`INSERT INTO likes (user_id, post_id)
		 VALUES ($1, $2)
		 RETURNING user_id, post_id`,
		userID, postID,
	).Scan(&like.UserID, &like.PostID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return &like, nil
}

// RemoveLike deletes a user's like on a post. Removing a like that
// does not exist is a no-op: the end state is identical either way.
// The username must still resolve.
func (r *EngagementRepository) RemoveLike(ctx context.Context, username string, postID int) error {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`,
		userID, postID,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// AddComment attaches a comment by the given user to a post. The user
// is resolved first; the post's existence is enforced by the foreign
// key on comments.post_id, so commenting on a missing post fails with
// a not-found error instead of inserting an orphan row.
func (r *EngagementRepository) AddComment(ctx context.Context, username string, postID int, text string) (*Comment, error) {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	var c Comment
	err = r.db.QueryRow(ctx,
		`INSERT INTO comments (user_id, post_id, comment)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, post_id, comment, date_posted`,
		userID, postID, text,
	).Scan(&c.ID, &c.UserID, &c.PostID, &c.Comment, &c.DatePosted)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return &c, nil
}

// RemoveComment deletes a comment by the (post, comment) pair.
// Deleting a pair that does not match any row is a no-op; the caller
// is not told whether a comment existed.
func (r *EngagementRepository) RemoveComment(ctx context.Context, postID, commentID int) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND post_id = $2`,
		commentID, postID,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// ListComments returns all comments on a post, oldest first. A post
// with no comments yields an empty list.
func (r *EngagementRepository) ListComments(ctx context.Context, postID int) ([]Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, post_id, comment, date_posted
		 FROM comments
		 WHERE post_id = $1
		 ORDER BY date_posted, id`,
		postID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Comment, &c.DatePosted); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return comments, nil
}
