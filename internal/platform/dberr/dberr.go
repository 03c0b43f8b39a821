// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies PostgreSQL errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/spellbook/internal/platform/apperr"
)

// SQLSTATE codes mapped to client errors.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeNotNull         = "23502"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies err. notFound replaces pgx.ErrNoRows when non-nil.
//
// Constraint violations become 409 or 400 responses; everything else is an
// internal error whose cause carries action for the server logs.
func Wrap(err error, action string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		if notFound != nil {
			return notFound
		}
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict("A record with the same identifier already exists")
		case codeCheckViolation, codeNotNull:
			return apperr.ValidationError("Rejected by a database constraint",
				apperr.FieldError{Field: pgError.ColumnName, Message: pgError.ConstraintName})
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
