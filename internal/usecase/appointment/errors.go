package appointment

import (
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
)

// notFound converts a missing-row error into a NotFound with code.
func notFound(err error, code, message string) error {
	if dbpkg.IsNotFound(err) {
		return httperr.NotFound(code, message)
	}
	return err
}
