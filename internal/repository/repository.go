// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and the rules for mutating
// application state: referential integrity checks, duplicate-edge
// rejection for likes and follows, username uniqueness, and the
// password-hash lifecycle. Repositories are the only legitimate
// writers; the service layer above performs no SQL of its own.
//
// Every method takes a context and runs against the storage handle the
// repository was constructed with, which may be the shared pool or a
// transaction (tests run each case inside a rolled-back transaction).
package repository
