// Package repository holds the MySQL-backed stores.  Sentinel errors are
// shared by every repository so that handlers can map failures to statuses
// without knowing which table was involved.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the addressed row does not exist.  Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with a unique constraint,
// such as a second profile for the same user or a reused slug.  Handlers
// translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

const (
	errDupEntry        = 1062
	errNoReferencedRow = 1452
)

// translate maps driver errors onto the sentinels above.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDupEntry:
			return ErrConflict
		case errNoReferencedRow:
			return ErrNotFound
		}
	}
	return err
}
