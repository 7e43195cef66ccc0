package store

import "errors"

// Low-level database operation errors. These are returned (or wrapped) by
// ConfigDB methods when a SQL-level operation fails. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrExecutingQuery is returned when reading config entries from the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point and the previously stored document is intact.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a config
	// entry row fails.
	ErrScanningRow = errors.New("failed to scan config entry row")
)
