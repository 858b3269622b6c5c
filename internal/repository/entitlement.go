package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"study-game/internal/domain"

	"github.com/jmoiron/sqlx"
)

const entitlementSchema = `
CREATE TABLE IF NOT EXISTS entitlements (
	user_id    TEXT NOT NULL,
	subject    TEXT NOT NULL DEFAULT '*',
	grade      TEXT NOT NULL DEFAULT '*',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, subject, grade)
);`

// EntitlementRepository answers whether a user has paid access to a
// subject and grade. A stored '*' matches any subject or grade.
type EntitlementRepository interface {
	HasAccess(ctx context.Context, userID, subject, grade string) (bool, error)
	Grant(ctx context.Context, userID, subject, grade string) error
}

type entitlementRepository struct {
	db *sqlx.DB
}

func NewEntitlementRepository(db *sqlx.DB) (EntitlementRepository, error) {
	if _, err := db.Exec(entitlementSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure entitlements schema: %w", err)
	}
	return &entitlementRepository{db: db}, nil
}

func (r *entitlementRepository) HasAccess(ctx context.Context, userID, subject, grade string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	query := `SELECT 1 FROM entitlements
		WHERE user_id = ?
		  AND (subject = '*' OR subject = ?)
		  AND (grade = '*' OR grade = ?)
		LIMIT 1`

	var one int
	err := r.db.GetContext(ctx, &one, query, userID, subject, grade)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.NewInternalError("failed to query entitlements", err)
	}
	return true, nil
}

func (r *entitlementRepository) Grant(ctx context.Context, userID, subject, grade string) error {
	if userID == "" {
		return domain.NewInvalidInputError("user id is required")
	}
	if subject == "" {
		subject = "*"
	}
	if grade == "" {
		grade = "*"
	}

	query := `INSERT INTO entitlements (user_id, subject, grade) VALUES (?, ?, ?)
		ON CONFLICT (user_id, subject, grade) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, subject, grade); err != nil {
		return domain.NewInternalError("failed to grant entitlement", err)
	}
	return nil
}
