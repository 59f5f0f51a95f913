package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

const (
	complaintID = "3f6a1c2e-8b4d-4e7a-9c11-2d5b7e9f0a13"
	missingID   = "9d0e4b7a-1c3f-4a6b-8e2d-5f7a9c1b3d24"
)

var complaintRowColumns = []string{
	"id", "user_id", "title", "description", "category", "source", "attachment_url",
	"priority", "priority_stage", "status", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestComplaintRepository_Create(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)

	c := &domain.Complaint{
		UserID:        "user-1",
		Title:         "Burst pipe",
		Description:   "Burst water main flooding the street",
		Category:      "water",
		Source:        domain.SourceText,
		Priority:      domain.PriorityHigh,
		PriorityStage: "category_pattern",
	}

	mock.ExpectExec("INSERT INTO complaints").
		WithArgs(sqlmock.AnyArg(), "user-1", "Burst pipe", c.Description, "water", domain.SourceText,
			nil, domain.PriorityHigh, "category_pattern", domain.StatusPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == "" {
		t.Error("expected id to be assigned")
	}
	if c.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", c.Status)
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestComplaintRepository_GetByID(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)
	now := time.Now()

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func() {
				rows := sqlmock.NewRows(complaintRowColumns).AddRow(
					complaintID, "user-1", "Dark street", "Streetlight off", "energy", "text", nil,
					"medium", "model", "pending", now, now,
				)
				mock.ExpectQuery("SELECT (.+) FROM complaints WHERE id = \\$1").
					WithArgs(complaintID).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func() {
				mock.ExpectQuery("SELECT (.+) FROM complaints WHERE id = \\$1").
					WithArgs(complaintID).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: database.ErrComplaintNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			got, err := repo.GetByID(context.Background(), complaintID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("GetByID() error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil {
				if got.Priority != domain.PriorityMedium || got.Category != "energy" {
					t.Errorf("unexpected complaint %+v", got)
				}
				if got.AttachmentURL != nil {
					t.Errorf("expected nil attachment url, got %v", *got.AttachmentURL)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestComplaintRepository_ListByUser(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)
	newer := time.Now()
	older := newer.Add(-time.Hour)

	rows := sqlmock.NewRows(complaintRowColumns).
		AddRow("c-2", "user-1", "b", "b", "water", "voice", "https://files/x.ogg", "high", "keywords", "pending", newer, newer).
		AddRow(complaintID, "user-1", "a", "a", "water", "text", nil, "low", "trivial", "resolved", older, older)

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("user-1", database.DefaultListLimit, 0).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "user-1", 0, -5)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "c-2" {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if got[0].AttachmentURL == nil || *got[0].AttachmentURL != "https://files/x.ogg" {
		t.Errorf("expected attachment url, got %v", got[0].AttachmentURL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestComplaintRepository_ListAll_CapsLimit(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)

	mock.ExpectQuery("FROM complaints").
		WithArgs("high", database.MaxListLimit, 10).
		WillReturnRows(sqlmock.NewRows(complaintRowColumns))

	got, err := repo.ListAll(context.Background(), domain.PriorityHigh, 10_000, 10)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestComplaintRepository_UpdateStatus(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)

	mock.ExpectExec("UPDATE complaints SET status").
		WithArgs(complaintID, domain.StatusResolved).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE complaints SET status").
		WithArgs(missingID, domain.StatusResolved).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), complaintID, domain.StatusResolved); err != nil {
		t.Errorf("UpdateStatus() error = %v", err)
	}
	if err := repo.UpdateStatus(context.Background(), missingID, domain.StatusResolved); !errors.Is(err, database.ErrComplaintNotFound) {
		t.Errorf("expected ErrComplaintNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestComplaintRepository_MalformedIDIsNotFound(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)

	if _, err := repo.GetByID(context.Background(), "abc"); !errors.Is(err, database.ErrComplaintNotFound) {
		t.Errorf("GetByID() error = %v, want ErrComplaintNotFound", err)
	}
	if err := repo.UpdateStatus(context.Background(), "abc", domain.StatusResolved); !errors.Is(err, database.ErrComplaintNotFound) {
		t.Errorf("UpdateStatus() error = %v, want ErrComplaintNotFound", err)
	}
	// No query may reach the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database calls: %v", err)
	}
}

func TestComplaintRepository_CountByPriority(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewComplaintRepository(db)

	mock.ExpectQuery("GROUP BY priority").
		WillReturnRows(sqlmock.NewRows([]string{"priority", "count"}).
			AddRow("high", 4).
			AddRow("low", 9))

	got, err := repo.CountByPriority(context.Background())
	if err != nil {
		t.Fatalf("CountByPriority() error = %v", err)
	}
	if len(got) != 2 || got[0].Priority != domain.PriorityHigh || got[0].Count != 4 {
		t.Errorf("unexpected counts %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProfileRepository_GetRole(t *testing.T) {
	t.Helper()

	db, mock := newMockDB(t)
	repo := database.NewProfileRepository(db)

	mock.ExpectQuery("SELECT role FROM profiles").
		WithArgs("official-1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("official"))
	mock.ExpectQuery("SELECT role FROM profiles").
		WithArgs("stranger").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT role FROM profiles").
		WithArgs("broken").
		WillReturnError(sql.ErrConnDone)

	role, err := repo.GetRole(context.Background(), "official-1")
	if err != nil || role != domain.RoleOfficial {
		t.Errorf("expected official, got %s (%v)", role, err)
	}

	role, err = repo.GetRole(context.Background(), "stranger")
	if err != nil || role != domain.RoleCitizen {
		t.Errorf("expected citizen default, got %s (%v)", role, err)
	}

	if _, err = repo.GetRole(context.Background(), "broken"); err == nil {
		t.Error("expected error on connection failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestNewPostgresConnection_RequiresHost(t *testing.T) {
	t.Helper()

	if _, err := database.NewPostgresConnection(database.Config{}); !errors.Is(err, database.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
