package transactor

import (
	"context"
)

// Transactor runs function within single transaction carried by context.
// Transaction is committed if function succeeds and rolled back otherwise
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
