package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/lib/password"
	"github.com/pixelfeed/backend/internal/sqlerr"
)

// User is a full user record. PasswordHash is never serialized and is
// cleared before records leave the repository.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	ProfileImage *string   `json:"profileImage"`
	Bio          *string   `json:"bio"`
	LastModified time.Time `json:"lastModified"`
	IsAdmin      bool      `json:"isAdmin"`
}

// UserSummary is the listing shape returned by FindAll.
type UserSummary struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	ProfileImage *string   `json:"profileImage"`
	LastModified time.Time `json:"lastModified"`
	IsAdmin      bool      `json:"isAdmin"`
}

// UserComment is one comment a user authored, keyed to its post.
type UserComment struct {
	PostID    int    `json:"postId"`
	CommentID int    `json:"commentId"`
	Comment   string `json:"comment"`
}

// UserDetail is the composite profile view assembled by Get: the
// user's own fields plus their posts, liked post ids, authored
// comments, and the ids they follow / are followed by.
type UserDetail struct {
	User
	Posts     []Post        `json:"posts"`
	Likes     []int         `json:"likes"`
	Comments  []UserComment `json:"comments"`
	Following []int         `json:"following"`
	Followers []int         `json:"followers"`
}

// LikedPost is one post in a user's liked list.
type LikedPost struct {
	PostID    int    `json:"postId"`
	ImageFile string `json:"imageFile"`
}

// RegisterParams are the fields required to create a user.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// userUpdateColumns translates logical update field names to their
// physical columns for the partial-update builder.
var userUpdateColumns = map[string]string{
	"firstName":    "first_name",
	"lastName":     "last_name",
	"profileImage": "profile_image",
	"isAdmin":      "is_admin",
}

// UserRepository owns CRUD and authentication for user records,
// including the password-hash lifecycle.
type UserRepository struct {
	db     DBTX
	hasher *password.Hasher
}

// NewUserRepository constructs a UserRepository on the given storage
// handle.
func NewUserRepository(db DBTX, hasher *password.Hasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

const userColumns = `id, username, password, first_name, last_name, email,
       profile_image, bio, last_modified, is_admin`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Email, &u.ProfileImage, &u.Bio, &u.LastModified, &u.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies username/password credentials and returns the
// user with the hash stripped.
//
// An unknown username and a wrong password fail identically so the
// endpoint cannot be used to enumerate accounts.
func (r *UserRepository) Authenticate(ctx context.Context, username, plaintext string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewUnauthorizedError("Invalid username/password", true)
		}
		return nil, sqlerr.HandleError(err)
	}

	if !r.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, errs.NewUnauthorizedError("Invalid username/password", true)
	}

	user.PasswordHash = ""
	return user, nil
}

// Register creates a new user. The username is checked for uniqueness
// first so duplicates fail with a conflict and no side effects; the
// unique constraint on users.username backstops the race, and a
// violation surfaces as the same conflict error.
func (r *UserRepository) Register(ctx context.Context, params RegisterParams) (*User, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		params.Username,
	).Scan(&exists)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if exists {
		return nil, errs.NewConflictError(
			fmt.Sprintf("Duplicate username: %s", params.Username), true, nil)
	}

	hash, err := r.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		params.Username, hash, params.FirstName, params.LastName, params.Email, params.IsAdmin,
	))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	user.PasswordHash = ""
	return user, nil
}

// FindAll returns all users ordered by username ascending.
func (r *UserRepository) FindAll(ctx context.Context) ([]UserSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, first_name, last_name, email, profile_image,
		        last_modified, is_admin
		 FROM users
		 ORDER BY username`,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	users := []UserSummary{}
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
			&u.Email, &u.ProfileImage, &u.LastModified, &u.IsAdmin); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}

// Get assembles the composite profile view for a username. The related
// collections are fetched with one scoped query per relation, keyed by
// the resolved internal id.
func (r *UserRepository) Get(ctx context.Context, username string) (*UserDetail, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}
	user.PasswordHash = ""

	detail := &UserDetail{
		User:      *user,
		Posts:     []Post{},
		Likes:     []int{},
		Comments:  []UserComment{},
		Following: []int{},
		Followers: []int{},
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, image_file, caption, date_posted, user_id
		 FROM posts
		 WHERE user_id = $1
		 ORDER BY date_posted DESC`,
		user.ID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.ImageFile, &p.Caption, &p.DatePosted, &p.UserID); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		detail.Posts = append(detail.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	likeRows, err := r.db.Query(ctx,
		`SELECT post_id FROM likes WHERE user_id = $1`,
		user.ID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var postID int
		if err := likeRows.Scan(&postID); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		detail.Likes = append(detail.Likes, postID)
	}
	if err := likeRows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	commentRows, err := r.db.Query(ctx,
		`SELECT post_id, id, comment FROM comments WHERE user_id = $1`,
		user.ID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var c UserComment
		if err := commentRows.Scan(&c.PostID, &c.CommentID, &c.Comment); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		detail.Comments = append(detail.Comments, c)
	}
	if err := commentRows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	followingRows, err := r.db.Query(ctx,
		`SELECT user_followed_id FROM follows WHERE user_following_id = $1`,
		user.ID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer followingRows.Close()
	for followingRows.Next() {
		var id int
		if err := followingRows.Scan(&id); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		detail.Following = append(detail.Following, id)
	}
	if err := followingRows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	followerRows, err := r.db.Query(ctx,
		`SELECT user_following_id FROM follows WHERE user_followed_id = $1`,
		user.ID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer followerRows.Close()
	for followerRows.Next() {
		var id int
		if err := followerRows.Scan(&id); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		detail.Followers = append(detail.Followers, id)
	}
	if err := followerRows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return detail, nil
}

// Update applies a partial update to a user. The password field, when
// present, is re-hashed before it reaches the builder; all other
// fields pass through untouched. The repository performs no
// authorization beyond the existence check — callers must have
// verified the requester may modify this username.
func (r *UserRepository) Update(ctx context.Context, username string, fields map[string]any) (*User, error) {
	if plaintext, ok := fields["password"]; ok {
		pw, ok := plaintext.(string)
		if !ok {
			return nil, errs.NewBadRequestError("Password must be a string", true, nil, nil, nil)
		}
		hash, err := r.hasher.Hash(pw)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}

	setClause, values, err := BuildPartialUpdate(fields, userUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, last_modified = now() WHERE username = $%d RETURNING %s`,
		setClause, len(values)+1, userColumns,
	)

	user, err := scanUser(r.db.QueryRow(ctx, query, append(values, username)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Remove hard-deletes a user. Owned posts, likes, comments, and follow
// edges are cleaned up by the schema's ON DELETE CASCADE constraints.
func (r *UserRepository) Remove(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM users WHERE username = $1`,
		username,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
	}
	return nil
}

// GetLikes returns the posts a user has liked.
func (r *UserRepository) GetLikes(ctx context.Context, username string) ([]LikedPost, error) {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.image_file
		 FROM likes AS l
		 JOIN posts AS p ON p.id = l.post_id
		 WHERE l.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	likes := []LikedPost{}
	for rows.Next() {
		var lp LikedPost
		if err := rows.Scan(&lp.PostID, &lp.ImageFile); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		likes = append(likes, lp)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return likes, nil
}
