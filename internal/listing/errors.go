package listing

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySource    = errors.New("source has no header row")
	ErrMissingColumns = errors.New("required columns missing")
)

// DataSourceError means the listings file could not be used at all. It is
// terminal for a session: nothing downstream runs on partial data.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// IsDataSourceError reports whether err (or anything it wraps) is a
// DataSourceError.
func IsDataSourceError(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}

// SchemaDefault records an optional column that was missing and backfilled.
// It is informational only and never returned as an error.
type SchemaDefault struct {
	Column string
	Value  string
}
