package db

import (
	"errors"
	"fmt"

	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// Sentinel errors for database operations.
var (
	ErrKeyNotFound          = errors.New("db: key not found")
	ErrUnsupportedPredicate = errors.New("db: unsupported predicate")
)

// Op names used for error context. Redis ops match the command names.
const (
	OpFind        = "FIND"
	OpFindOne     = "FIND_ONE"
	OpUpsert      = "UPSERT"
	OpCount       = "COUNT"
	OpPing        = "PING"
	OpMigrate     = "MIGRATE"
	OpCreateIndex = "FT.CREATE"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpJSONSet     = "JSON.SET"
	OpDel         = "DEL"
	OpGet         = "GET"
	OpSet         = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Unsupported reports a predicate variant a driver cannot translate.
func Unsupported(p predicate.Predicate) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedPredicate, p)
}
