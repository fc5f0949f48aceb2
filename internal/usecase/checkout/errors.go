package checkout

import (
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
)

func notFound(err error, code, message string) error {
	if dbpkg.IsNotFound(err) {
		return httperr.NotFound(code, message)
	}
	return err
}

const codeInsufficientStock = "insufficient_stock"
