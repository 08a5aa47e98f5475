package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelfeed/backend/internal/lib/password"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Integration tests run against a real database when
// PIXELFEED_TEST_DATABASE_URL is set (schema migrated beforehand) and
// skip otherwise. Every test runs inside a transaction that is rolled
// back, so tests never see each other's writes and the database stays
// clean.

const testDatabaseEnv = "PIXELFEED_TEST_DATABASE_URL"

var testHasher = password.NewHasher(bcrypt.MinCost)

func testTx(t *testing.T) (context.Context, pgx.Tx) {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping database integration test", testDatabaseEnv)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return ctx, tx
}

// seed inserts a small fixed world: three users, two posts, one like,
// one comment, one follow edge. Explicit ids sit well above the
// serial sequence so seeded rows never collide with rows the tests
// insert.
//
//	alice (1000, admin)  owns post 500
//	bob   (1001)         owns post 501, likes post 500, follows alice
//	carla (1002)         comments 700 on post 500
func seed(t *testing.T, ctx context.Context, tx pgx.Tx) {
	t.Helper()

	hash, err := testHasher.Hash("password123")
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, password, first_name, last_name, email, is_admin)
		VALUES
			(1000, 'alice', $1, 'Alice', 'Adams', 'alice@example.com', TRUE),
			(1001, 'bob',   $1, 'Bob',   'Brown', 'bob@example.com',   FALSE),
			(1002, 'carla', $1, 'Carla', 'Cruz',  'carla@example.com', FALSE)`,
		hash,
	)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO posts (id, image_file, caption, user_id)
		VALUES
			(500, 'sunset.jpg', 'golden hour', 1000),
			(501, 'coffee.jpg', NULL, 1001)`)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `INSERT INTO likes (user_id, post_id) VALUES (1001, 500)`)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO comments (id, user_id, post_id, comment)
		VALUES (700, 1002, 500, 'love the colors')`)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO follows (user_following_id, user_followed_id) VALUES (1001, 1000)`)
	require.NoError(t, err)

	// Explicit ids do not advance the serial sequences; bump them so
	// rows inserted by the tests get ids above the seeded ones.
	_, err = tx.Exec(ctx, `
		SELECT setval('users_id_seq', 2000),
		       setval('posts_id_seq', 2000),
		       setval('comments_id_seq', 2000)`)
	require.NoError(t, err)
}
