package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/sqlerr"
)

// Post is a single post record.
type Post struct {
	ID         int       `json:"id"`
	ImageFile  string    `json:"imageFile"`
	Caption    *string   `json:"caption"`
	DatePosted time.Time `json:"datePosted"`
	UserID     int       `json:"userId"`
}

// PostWithAuthor is a post row with the author's public fields joined
// in, the shape the feed endpoint serves.
type PostWithAuthor struct {
	Post
	Username     string  `json:"username"`
	ProfileImage *string `json:"profileImage"`
}

// PostLike identifies one user who liked a post.
type PostLike struct {
	UserID       int     `json:"userId"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profileImage"`
}

// PostComment is one comment on a post together with the commenter's
// username.
type PostComment struct {
	ID       int    `json:"id"`
	Comment  string `json:"comment"`
	Username string `json:"username"`
}

// PostDetail is the composite single-post view: the post itself, its
// author, everyone who liked it, and its comments.
type PostDetail struct {
	Post
	Username     string        `json:"username"`
	ProfileImage *string       `json:"profileImage"`
	Likes        []PostLike    `json:"likes"`
	Comments     []PostComment `json:"comments"`
}

// CreatePostParams are the fields accepted when creating a post. The
// owner is addressed by username; the repository resolves the id.
type CreatePostParams struct {
	Username  string
	ImageFile string
	Caption   *string
}

// PostRepository owns CRUD for post records.
type PostRepository struct {
	db DBTX
}

// NewPostRepository constructs a PostRepository on the given storage
// handle.
func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, image_file, caption, date_posted, user_id`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.ImageFile, &p.Caption, &p.DatePosted, &p.UserID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a post owned by the given username. An unknown
// username fails with a not-found error before any write happens.
func (r *PostRepository) Create(ctx context.Context, params CreatePostParams) (*Post, error) {
	userID, err := resolveUserID(ctx, r.db, params.Username)
	if err != nil {
		return nil, err
	}

	post, err := scanPost(r.db.QueryRow(ctx,
		`INSERT INTO posts (image_file, caption, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING `+postColumns,
		params.ImageFile, params.Caption, userID,
	))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return post, nil
}

// FindAll returns all posts, newest first, each with its author's
// username and avatar joined in.
func (r *PostRepository) FindAll(ctx context.Context) ([]PostWithAuthor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.image_file, p.caption, p.date_posted, p.user_id, u.username, u.profile_image
		 FROM posts AS p
		 JOIN users AS u ON u.id = p.user_id
		 ORDER BY p.date_posted DESC, p.id DESC`,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	posts := []PostWithAuthor{}
	for rows.Next() {
		var p PostWithAuthor
		err := rows.Scan(&p.ID, &p.ImageFile, &p.Caption, &p.DatePosted, &p.UserID,
			&p.Username, &p.ProfileImage)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return posts, nil
}

// Get returns the composite view of a single post: the post row with
// author info, plus its likes and comments from separate scans keyed
// by the post id.
func (r *PostRepository) Get(ctx context.Context, postID int) (*PostDetail, error) {
	var d PostDetail
	err := r.db.QueryRow(ctx,
		`SELECT p.id, p.image_file, p.caption, p.date_posted, p.user_id, u.username, u.profile_image
		 FROM posts AS p
		 JOIN users AS u ON u.id = p.user_id
		 WHERE p.id = $1`,
		postID,
	).Scan(&d.ID, &d.ImageFile, &d.Caption, &d.DatePosted, &d.UserID,
		&d.Username, &d.ProfileImage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No post: %d", postID), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	if d.Likes, err = r.GetLikes(ctx, postID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.comment, u.username
		 FROM comments AS c
		 JOIN users AS u ON u.id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.date_posted, c.id`,
		postID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	d.Comments = []PostComment{}
	for rows.Next() {
		var pc PostComment
		if err := rows.Scan(&pc.ID, &pc.Comment, &pc.Username); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		d.Comments = append(d.Comments, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return &d, nil
}

// GetLikes returns the users who liked a post. A post with no likes —
// including a post id that does not exist — yields an empty list, not
// an error.
func (r *PostRepository) GetLikes(ctx context.Context, postID int) ([]PostLike, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, u.profile_image
		 FROM likes AS l
		 JOIN users AS u ON u.id = l.user_id
		 WHERE l.post_id = $1`,
		postID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	likes := []PostLike{}
	for rows.Next() {
		var pl PostLike
		if err := rows.Scan(&pl.UserID, &pl.Username, &pl.ProfileImage); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		likes = append(likes, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return likes, nil
}

// Remove hard-deletes a post. Authorization is the caller's concern;
// the repository only checks existence. Likes and comments on the post
// are cleaned up by ON DELETE CASCADE.
func (r *PostRepository) Remove(ctx context.Context, postID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM posts WHERE id = $1`,
		postID,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("No post: %d", postID), true, nil)
	}
	return nil
}
