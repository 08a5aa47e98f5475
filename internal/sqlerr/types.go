package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code classifies a database error into the categories the application
// cares about. Anything unrecognized maps to Other.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	InvalidTextRepresentation
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Postgres SQLSTATE codes for the integrity-constraint class (23xxx)
// and the data-exception class we handle.
const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
	sqlstateNotNullViolation    = "23502"
	sqlstateCheckViolation      = "23514"
	sqlstateInvalidText         = "22P02"
)

// MapCode maps a raw SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case sqlstateUniqueViolation:
		return UniqueViolation
	case sqlstateForeignKeyViolation:
		return ForeignKeyViolation
	case sqlstateNotNullViolation:
		return NotNullViolation
	case sqlstateCheckViolation:
		return CheckViolation
	case sqlstateInvalidText:
		return InvalidTextRepresentation
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// Error is the normalized database error. It keeps the interesting
// metadata from pgconn.PgError (table, column, constraint) so callers
// can build precise client-facing messages.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("database error on table %s: %s", e.TableName, e.Message)
	}
	return "database error: " + e.Message
}

// Unwrap exposes the underlying driver error for errors.As chains.
func (e *Error) Unwrap() error {
	if e.driverErr != nil {
		return e.driverErr
	}
	return nil
}
