package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// adminRole is the admin_profiles.role value that grants back-office access.
const adminRole = "admin"

// RoleChecker resolves an identity's admin standing.
type RoleChecker interface {
	// Check resolves the admin status for the given email. It never
	// returns StatusPending: a lookup that cannot complete resolves to
	// StatusDenied rather than leaving the caller hanging.
	Check(ctx context.Context, email string) Status
}

// PgRoleChecker implements RoleChecker against the admin_profiles table.
type PgRoleChecker struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgRoleChecker creates a RoleChecker backed by PostgreSQL.
func NewPgRoleChecker(dbp *pgxpool.Pool, logger *slog.Logger) *PgRoleChecker {
	return &PgRoleChecker{
		db:     dbp,
		logger: logger.With("component", "role_checker"),
	}
}

// Check looks up the identity's role. A missing profile, a non-admin role
// and a failed query all resolve to StatusDenied; failures are logged.
func (c *PgRoleChecker) Check(ctx context.Context, email string) Status {
	var role string
	err := c.db.QueryRow(ctx,
		`SELECT role FROM admin_profiles WHERE email = $1`, email,
	).Scan(&role)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			c.logger.ErrorContext(ctx, "Admin role lookup failed", "error", err)
		}
		return StatusDenied
	}
	if role != adminRole {
		return StatusDenied
	}
	return StatusGranted
}
