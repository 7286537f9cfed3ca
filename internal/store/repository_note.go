package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
//
// The encryption invariant is double-guarded: the tagged
// [models.Protection] type cannot represent an encrypted note without a
// hash, and the notes table carries a CHECK constraint for writes that
// bypass this process.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanNote reads one note row in [noteColumns] order and reassembles the
// tagged protection state. A row claiming to be encrypted without a hash
// fails with [ErrInconsistentNoteRow] instead of producing a half-valid note.
func scanNote(row rowScanner) (models.Note, error) {
	var (
		note         models.Note
		encrypted    bool
		passcodeHash sql.NullString
	)

	if err := row.Scan(
		&note.NoteID, &note.OwnerID, &note.FileName, &note.Content,
		&encrypted, &passcodeHash, &note.Shareable, &note.CreatedAt,
	); err != nil {
		return models.Note{}, err
	}

	if encrypted {
		protection, err := models.EncryptedProtection(passcodeHash.String)
		if err != nil {
			return models.Note{}, ErrInconsistentNoteRow
		}
		note.Protection = protection
	} else {
		note.Protection = models.PlainProtection()
	}

	return note, nil
}

// CreateNote persists a new note and returns the fully populated
// [models.Note] with server-assigned fields (NoteID, CreatedAt).
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	passcodeHash := sql.NullString{}
	if hash, ok := note.Protection.PasscodeHash(); ok {
		passcodeHash = sql.NullString{String: hash, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createNote,
		note.OwnerID, note.FileName, note.Content,
		note.Protection.Encrypted(), passcodeHash, note.Shareable,
	)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: insert failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanNote(row)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// GetNoteByID retrieves a single note.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoteNotFound].
//   - Inconsistent encryption state on the row → [ErrInconsistentNoteRow].
func (r *noteRepository) GetNoteByID(ctx context.Context, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getNoteByID, noteID)
	if err := row.Err(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.GetNoteByID").Msg("error: query failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		if errors.Is(err, ErrInconsistentNoteRow) {
			log.Err(err).Int64("note_id", noteID).Str("func", "*noteRepository.GetNoteByID").Msg("error: inconsistent note row")
			return models.Note{}, err
		}
		log.Err(err).Str("func", "*noteRepository.GetNoteByID").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// ListNotesByOwner returns all notes created by the given owner, newest
// first. The query is built with squirrel via [buildListNotesByOwnerQuery].
func (r *noteRepository) ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesByOwnerQuery(ownerID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotesByOwner").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotesByOwner").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Err(err).Str("func", "*noteRepository.ListNotesByOwner").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// deleteRetryAttempts bounds how often a delete transaction is re-run after
// a transient failure (deadlock, serialization failure, lost connection).
const deleteRetryAttempts = 3

// DeleteNoteByID removes a note and all of its share grants in a single
// transaction, so former grantees cannot observe a half-deleted state.
// The transaction can deadlock against a concurrent share of the same
// note, so retryable failures (per the postgres error classifier) are
// re-run up to [deleteRetryAttempts] times.
func (r *noteRepository) DeleteNoteByID(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= deleteRetryAttempts; attempt++ {
		if err = r.deleteNoteTx(ctx, noteID); err == nil {
			return nil
		}
		if r.db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		log.Warn().Err(err).
			Int("attempt", attempt).
			Int64("note_id", noteID).
			Msg("retrying note delete after transient failure")
	}

	return err
}

// deleteNoteTx is one attempt of the delete transaction. Grants go first:
// the foreign key from share_grants to notes forbids the opposite order.
func (r *noteRepository) deleteNoteTx(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.deleteNoteTx").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, deleteGrantsByNote, noteID); err != nil {
		log.Err(err).Str("func", "*noteRepository.deleteNoteTx").Msg("error: deleting grants")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, deleteNoteByID, noteID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.deleteNoteTx").Msg("error: deleting note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.deleteNoteTx").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return nil
}
