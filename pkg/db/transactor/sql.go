package transactor

import (
	"context"
	"database/sql"
)

type sqlTxKey struct{}

func withSQLTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, sqlTxKey{}, tx)
}

func sqlTxValue(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(sqlTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

type SQLTransactor interface {
	Transactor
	WithinTransactionWithOptions(context.Context, func(context.Context) error, *sql.TxOptions) error
}

type sqlTransactor struct {
	db *sql.DB
}

func NewSQLTransactor(db *sql.DB) SQLTransactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, nil)
}

func (t *sqlTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc func(context.Context) error, opts *sql.TxOptions) (err error) {
	tx, err := t.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		var txErr error
		if err != nil {
			txErr = tx.Rollback()
		} else {
			txErr = tx.Commit()
		}

		if txErr != nil && err == nil {
			err = txErr
		}
	}()

	err = txFunc(withSQLTx(ctx, tx))
	return err
}

type SQLWithinTransactionExecutor interface {
	Executor(ctx context.Context) SQLQueryExecutor
}

// SQLQueryExecutor is satisfied by both *sql.DB and *sql.Tx
type SQLQueryExecutor interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type sqlWithinTransactionExecutor struct {
	db *sql.DB
}

func NewSQLWithinTransactionExecutor(db *sql.DB) SQLWithinTransactionExecutor {
	return &sqlWithinTransactionExecutor{db: db}
}

func (e *sqlWithinTransactionExecutor) Executor(ctx context.Context) SQLQueryExecutor {
	tx := sqlTxValue(ctx)
	if tx != nil {
		return tx
	}
	return e.db
}
