package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/models"
)

func newTestGrantRepo(t *testing.T) (*grantRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &grantRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestUpsertGrant_NewGrant(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"grant_id", "note_id", "recipient_id", "expires_at", "created_at"}).
		AddRow(1, 10, 2, nil, now)

	mock.ExpectQuery("INSERT INTO share_grants").
		WithArgs(int64(10), int64(2), sqlmock.AnyArg()).
		WillReturnRows(rows)

	saved, err := repo.UpsertGrant(ctx, models.ShareGrant{NoteID: 10, RecipientID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.GrantID != 1 {
		t.Errorf("expected GrantID=1, got %d", saved.GrantID)
	}
	if saved.ExpiresAt != nil {
		t.Errorf("expected nil expiry, got %v", saved.ExpiresAt)
	}
}

func TestUpsertGrant_WithExpiry(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	expiry := now.Add(24 * time.Hour)

	rows := sqlmock.
		NewRows([]string{"grant_id", "note_id", "recipient_id", "expires_at", "created_at"}).
		AddRow(1, 10, 2, expiry, now)

	mock.ExpectQuery("INSERT INTO share_grants").
		WithArgs(int64(10), int64(2), sqlmock.AnyArg()).
		WillReturnRows(rows)

	saved, err := repo.UpsertGrant(ctx, models.ShareGrant{NoteID: 10, RecipientID: 2, ExpiresAt: &expiry})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ExpiresAt == nil || !saved.ExpiresAt.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, saved.ExpiresAt)
	}
}

func TestUpsertGrant_DBError(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO share_grants").
		WillReturnError(errors.New("db network error"))

	_, err := repo.UpsertGrant(ctx, models.ShareGrant{NoteID: 10, RecipientID: 2})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFindActiveGrant_Found(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"grant_id", "note_id", "recipient_id", "expires_at", "created_at"}).
		AddRow(3, 10, 2, nil, now)

	mock.ExpectQuery("SELECT (.+) FROM share_grants").
		WithArgs(int64(10), int64(2), sqlmock.AnyArg()).
		WillReturnRows(rows)

	grant, err := repo.FindActiveGrant(ctx, 10, 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grant.GrantID != 3 {
		t.Errorf("expected GrantID=3, got %d", grant.GrantID)
	}
}

func TestFindActiveGrant_NotFound(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	// expiry filtering happens inside the query, so an expired grant also
	// produces an empty result set
	mock.ExpectQuery("SELECT (.+) FROM share_grants").
		WithArgs(int64(10), int64(2), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActiveGrant(ctx, 10, 2, time.Now())
	if !errors.Is(err, ErrGrantNotFound) {
		t.Fatalf("expected ErrGrantNotFound, got %v", err)
	}
}

func TestListSharedNotes_Success(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := noteRows().
		AddRow(10, 1, "shared.txt", "content", false, nil, true, now)

	mock.ExpectQuery("SELECT (.+) FROM notes n JOIN share_grants g").
		WillReturnRows(rows)

	notes, err := repo.ListSharedNotes(ctx, 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].NoteID != 10 {
		t.Errorf("expected NoteID=10, got %d", notes[0].NoteID)
	}
}

func TestListSharedNotes_Empty(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM notes n JOIN share_grants g").
		WillReturnRows(noteRows())

	notes, err := repo.ListSharedNotes(ctx, 2, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Fatalf("expected empty slice, got %v", notes)
	}
}

func TestDeleteGrantsByNote_Success(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM share_grants").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteGrantsByNote(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteGrantsByNote_NoGrants(t *testing.T) {
	repo, mock, db := newTestGrantRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM share_grants").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// a never-shared note has nothing to revoke; not an error
	if err := repo.DeleteGrantsByNote(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
