package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/models"
)

// grantRepository is the PostgreSQL-backed implementation of
// [GrantRepository]. Grants live in an indexed (note_id, recipient_id)
// table rather than an embedded list on either side, which makes the
// idempotent upsert and the cascade delete single statements.
type grantRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGrantRepository constructs a [GrantRepository] backed by the provided
// database connection and logger.
func NewGrantRepository(db *DB, logger *logger.Logger) GrantRepository {
	logger.Debug().Msg("creating grant repository")
	return &grantRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertGrant records a share. The ON CONFLICT clause of
// [upsertShareGrant] turns a duplicate (note, recipient) pair into an
// update of the existing row, so concurrent shares of the same pair cannot
// produce duplicates and re-sharing refreshes the expiry.
func (r *grantRepository) UpsertGrant(ctx context.Context, grant models.ShareGrant) (models.ShareGrant, error) {
	log := logger.FromContext(ctx)

	expiresAt := sql.NullTime{}
	if grant.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *grant.ExpiresAt, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, upsertShareGrant, grant.NoteID, grant.RecipientID, expiresAt)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*grantRepository.UpsertGrant").Msg("error: upsert failed")
		return models.ShareGrant{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var (
		saved       models.ShareGrant
		savedExpiry sql.NullTime
	)
	if err := row.Scan(&saved.GrantID, &saved.NoteID, &saved.RecipientID, &savedExpiry, &saved.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShareGrant{}, ErrGrantNotSaved
		}
		log.Err(err).Str("func", "*grantRepository.UpsertGrant").Msg("error: scanning error")
		return models.ShareGrant{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if savedExpiry.Valid {
		saved.ExpiresAt = &savedExpiry.Time
	}

	return saved, nil
}

// FindActiveGrant looks up the grant for (noteID, recipientID) that is still
// active at now. Expired or absent grants both surface as [ErrGrantNotFound].
func (r *grantRepository) FindActiveGrant(ctx context.Context, noteID, recipientID int64, now time.Time) (models.ShareGrant, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findActiveGrant, noteID, recipientID, now)

	var (
		grant  models.ShareGrant
		expiry sql.NullTime
	)
	if err := row.Scan(&grant.GrantID, &grant.NoteID, &grant.RecipientID, &expiry, &grant.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShareGrant{}, ErrGrantNotFound
		}
		log.Err(err).Str("func", "*grantRepository.FindActiveGrant").Msg("error: scanning error")
		return models.ShareGrant{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if expiry.Valid {
		grant.ExpiresAt = &expiry.Time
	}

	return grant, nil
}

// ListSharedNotes returns the notes shared with recipientID through grants
// active at now. Expired grants are excluded by the query built in
// [buildListSharedNotesQuery]; the rows themselves are left in place.
func (r *grantRepository) ListSharedNotes(ctx context.Context, recipientID int64, now time.Time) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSharedNotesQuery(recipientID, now)
	if err != nil {
		log.Err(err).Str("func", "*grantRepository.ListSharedNotes").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*grantRepository.ListSharedNotes").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Err(err).Str("func", "*grantRepository.ListSharedNotes").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// DeleteGrantsByNote removes every grant referencing the given note.
// Deleting zero rows is not an error: a never-shared note simply has none.
func (r *grantRepository) DeleteGrantsByNote(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteGrantsByNote, noteID); err != nil {
		log.Err(err).Str("func", "*grantRepository.DeleteGrantsByNote").Msg("error: delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
