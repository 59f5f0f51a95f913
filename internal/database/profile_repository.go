package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// ProfileRepository reads portal user roles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetRole returns the role of userID. Users without a profile are citizens.
func (r *ProfileRepository) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	var role domain.Role
	err := r.db.GetContext(ctx, &role, `SELECT role FROM profiles WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoleCitizen, nil
	}
	if err != nil {
		return "", fmt.Errorf("get role: %w", err)
	}
	if role == "" {
		return domain.RoleCitizen, nil
	}
	return role, nil
}
