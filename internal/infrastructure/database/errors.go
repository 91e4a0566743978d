package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ConstraintViolation describes a failed integrity constraint
type ConstraintViolation struct {
	Code       string
	Constraint string
	Table      string
}

// AsConstraintViolation extracts a unique/foreign-key/check violation from err.
// Classification is by SQLSTATE and constraint name, never by message text.
func AsConstraintViolation(err error) (*ConstraintViolation, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return &ConstraintViolation{
			Code:       pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Table:      pgErr.TableName,
		}, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

func IsCheckViolation(err error) bool {
	return hasCode(err, pgerrcode.CheckViolation)
}

// IsValueOutOfRange reports a value the column type cannot hold (INTEGER or NUMERIC(p,s) overflow)
func IsValueOutOfRange(err error) bool {
	return hasCode(err, pgerrcode.NumericValueOutOfRange)
}

// IsConstraint reports whether err violates the named constraint
func IsConstraint(err error, name string) bool {
	v, ok := AsConstraintViolation(err)
	return ok && v.Constraint == name
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
