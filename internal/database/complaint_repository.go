package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

const (
	// DefaultListLimit is used when a caller passes a non-positive limit.
	DefaultListLimit = 50
	// MaxListLimit caps page size.
	MaxListLimit = 200

	complaintColumns = `id, user_id, title, description, category, source, attachment_url,
		priority, priority_stage, status, created_at, updated_at`
)

// ErrComplaintNotFound is returned when no complaint has the requested id.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintRepository stores complaints in PostgreSQL.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository creates a new repository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create inserts c, assigning an id, pending status and timestamps when unset.
func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.StatusPending
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO complaints (` + complaintColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Title, c.Description, c.Category, c.Source, c.AttachmentURL,
		c.Priority, c.PriorityStage, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

// isUUID reports whether id can be compared against a UUID column.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetByID returns the complaint with id. Ids that are not UUIDs are not found.
func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	if !isUUID(id) {
		return nil, ErrComplaintNotFound
	}

	var c domain.Complaint
	err := r.db.GetContext(ctx, &c, `SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get complaint %s: %w", id, err)
	}
	return &c, nil
}

// ListByUser returns userID's complaints, newest first.
func (r *ComplaintRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Complaint, error) {
	limit, offset = clampPage(limit, offset)

	complaints := make([]domain.Complaint, 0)
	err := r.db.SelectContext(ctx, &complaints, `
		SELECT `+complaintColumns+`
		FROM complaints
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list complaints for user: %w", err)
	}
	return complaints, nil
}

// ListAll returns every complaint, optionally filtered by priority, newest first.
func (r *ComplaintRepository) ListAll(ctx context.Context, priority domain.Priority, limit, offset int) ([]domain.Complaint, error) {
	limit, offset = clampPage(limit, offset)

	complaints := make([]domain.Complaint, 0)
	err := r.db.SelectContext(ctx, &complaints, `
		SELECT `+complaintColumns+`
		FROM complaints
		WHERE ($1 = '' OR priority = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		string(priority), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

// UpdateStatus sets the status of complaint id.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	if !isUUID(id) {
		return ErrComplaintNotFound
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE complaints SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}
	if rows == 0 {
		return ErrComplaintNotFound
	}
	return nil
}

// CountByPriority returns the number of open complaints per priority.
func (r *ComplaintRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	counts := make([]domain.PriorityCount, 0, 3)
	err := r.db.SelectContext(ctx, &counts, `
		SELECT priority, COUNT(*) AS count
		FROM complaints
		WHERE status IN ('pending', 'in_progress')
		GROUP BY priority
		ORDER BY priority`)
	if err != nil {
		return nil, fmt.Errorf("count complaints by priority: %w", err)
	}
	return counts, nil
}

func clampPage(limit, offset int) (clampedLimit, clampedOffset int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
