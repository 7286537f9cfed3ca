package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because an account with the same email already exists.
	// Backed by the unique constraint on users.email, so concurrent
	// registrations of the same address cannot both succeed.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when a query or delete targets a note
	// that does not exist in the database.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrInconsistentNoteRow is returned when a scanned note row violates
	// the encryption invariant (encrypted flag set without a passcode
	// hash). The CHECK constraint makes this unreachable through this
	// application; it guards against out-of-band writes.
	ErrInconsistentNoteRow = errors.New("note row has inconsistent encryption state")

	// ErrGrantNotSaved is returned when a share upsert completes without a
	// driver error but persists no row.
	ErrGrantNotSaved = errors.New("share grant was not saved")

	// ErrGrantNotFound is returned when no active grant exists for the
	// requested (note, recipient) pair. An expired grant matches this too:
	// expiry is checked in the query, not by the caller.
	ErrGrantNotFound = errors.New("share grant was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
