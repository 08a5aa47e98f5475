package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/pixelfeed/backend/internal/sqlerr"
)

// DBTX is the storage handle repositories run against. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository code
// serves production traffic and transaction-scoped tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// resolveUserID looks up a user's surrogate key by username. Several
// repositories need this resolution before touching edge tables.
func resolveUserID(ctx context.Context, db DBTX, username string) (int, error) {
	var id int
	err := db.QueryRow(ctx,
		`SELECT id FROM users WHERE username = $1`,
		username,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
		}
		return 0, sqlerr.HandleError(err)
	}
	return id, nil
}

// postExists reports whether a post row exists for the given id.
func postExists(ctx context.Context, db DBTX, postID int) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`,
		postID,
	).Scan(&exists)
	if err != nil {
		return false, sqlerr.HandleError(err)
	}
	return exists, nil
}
