package repository

import (
	"context"
	"fmt"

	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/sqlerr"
)

// FollowEdge is one directed follow relationship.
type FollowEdge struct {
	FollowingID int `json:"followingId"`
	FollowedID  int `json:"followedId"`
}

// FollowedUser is one user in a following/followers listing.
type FollowedUser struct {
	UserID       int     `json:"userId"`
	Username     string  `json:"username"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
}

// FollowRepository owns the directed follow graph between users.
type FollowRepository struct {
	db DBTX
}

// NewFollowRepository constructs a FollowRepository on the given
// storage handle.
func NewFollowRepository(db DBTX) *FollowRepository {
	return &FollowRepository{db: db}
}

// Follow records that follower starts following the user with the
// given id. Preconditions run in order: the follower must exist, the
// target must exist, the pair must not be the same user, and the edge
// must not already exist. The unique pair constraint and the
// no-self-follow check constraint backstop the last two under
// concurrency; violations surface as the same conflict errors.
func (r *FollowRepository) Follow(ctx context.Context, follower string, followedID int) (*FollowEdge, error) {
	followerID, err := resolveUserID(ctx, r.db, follower)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`,
		followedID,
	).Scan(&exists)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if !exists {
		return nil, errs.NewNotFoundError(fmt.Sprintf("No user: %d", followedID), true, nil)
	}

	if followerID == followedID {
		return nil, errs.NewConflictError("Users cannot follow themselves", true, nil)
	}

	var following bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM follows
		   WHERE user_following_id = $1 AND user_followed_id = $2
		 )`,
		followerID, followedID,
	).Scan(&following)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if following {
		return nil, errs.NewConflictError(
			fmt.Sprintf("%s already follows user %d", follower, followedID), true, nil)
	}

	var edge FollowEdge
	err = r.db.QueryRow(ctx,
		`INSERT INTO follows (user_following_id, user_followed_id)
		 VALUES ($1, $2)
		 RETURNING user_following_id, user_followed_id`,
		followerID, followedID,
	).Scan(&edge.FollowingID, &edge.FollowedID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return &edge, nil
}

// Unfollow removes the edge from follower to the given user id. The
// follower's username must resolve, and the edge must exist; removing
// an edge that was never there is a not-found error.
func (r *FollowRepository) Unfollow(ctx context.Context, follower string, followedID int) error {
	followerID, err := resolveUserID(ctx, r.db, follower)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM follows
		 WHERE user_following_id = $1 AND user_followed_id = $2`,
		followerID, followedID,
	)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(
			fmt.Sprintf("%s is not following user %d", follower, followedID), true, nil)
	}
	return nil
}

// Following returns the users the given username follows.
func (r *FollowRepository) Following(ctx context.Context, username string) ([]FollowedUser, error) {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}
	return r.listEdges(ctx,
		`SELECT u.id, u.username, u.first_name, u.last_name, u.profile_image
		 FROM follows AS f
		 JOIN users AS u ON u.id = f.user_followed_id
		 WHERE f.user_following_id = $1
		 ORDER BY u.username`,
		userID,
	)
}

// Followers returns the users following the given username.
func (r *FollowRepository) Followers(ctx context.Context, username string) ([]FollowedUser, error) {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}
	return r.listEdges(ctx,
		`SELECT u.id, u.username, u.first_name, u.last_name, u.profile_image
		 FROM follows AS f
		 JOIN users AS u ON u.id = f.user_following_id
		 WHERE f.user_followed_id = $1
		 ORDER BY u.username`,
		userID,
	)
}

func (r *FollowRepository) listEdges(ctx context.Context, query string, userID int) ([]FollowedUser, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	users := []FollowedUser{}
	for rows.Next() {
		var fu FollowedUser
		if err := rows.Scan(&fu.UserID, &fu.Username, &fu.FirstName, &fu.LastName, &fu.ProfileImage); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		users = append(users, fu)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}
