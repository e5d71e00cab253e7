package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when a user with the same email is
	// already stored.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a lookup, update or delete matches no
	// user record.
	ErrUserNotFound = errors.New("no user was found")

	// ErrOTPNotFound is returned when the user has no pending one-time code
	// or the targeted code no longer exists.
	ErrOTPNotFound = errors.New("no otp was found")

	// ErrEmployeeAlreadyExists is returned when an employee with the same
	// email is already stored.
	ErrEmployeeAlreadyExists = errors.New("employee already exists")

	// ErrEmployeeNotFound is returned when no employee matches the query.
	ErrEmployeeNotFound = errors.New("no employee was found")

	// ErrUnknownStorageMode is returned by [NewStorage] for an unsupported
	// backend name.
	ErrUnknownStorageMode = errors.New("unknown storage mode")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a storage-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrReadingCollection is returned when a flat-file collection cannot be
	// read or decoded.
	ErrReadingCollection = errors.New("failed to read collection file")

	// ErrWritingCollection is returned when a flat-file collection cannot be
	// encoded or written.
	ErrWritingCollection = errors.New("failed to write collection file")
)
