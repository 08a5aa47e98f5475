// Package sqlerr translates database driver errors into application errors.
//
// It parses SQLSTATE codes from pgx/pgconn and converts them into the
// errs types the HTTP layer understands: a unique-constraint violation
// becomes a conflict, a foreign-key violation becomes a not-found for
// the referenced entity, and so on. Repositories rely on this layer as
// the authoritative signal for invariants enforced in the schema, in
// particular the composite uniqueness of like and follow edges.
package sqlerr
