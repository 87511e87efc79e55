package repository

import (
	"context"

	"github.com/umalmyha/customers-intake/internal/errors"
	"github.com/umalmyha/customers-intake/internal/model"
	"github.com/umalmyha/customers-intake/pkg/db/transactor"
)

const customersSchema = `CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	birthday TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	address TEXT NOT NULL,
	preferred_contact TEXT NOT NULL CHECK (preferred_contact IN ('Email','Phone','Mail')),
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// CustomerRepository owns customers table. Every returned error is *errors.StorageErr
type CustomerRepository interface {
	InitSchema(context.Context) error
	Create(context.Context, model.NewCustomer) (int64, error)
	FindAll(context.Context) (model.Table, error)
}

type sqliteCustomerRepository struct {
	trx      transactor.SQLTransactor
	executor transactor.SQLWithinTransactionExecutor
}

func NewSQLiteCustomerRepository(trx transactor.SQLTransactor, e transactor.SQLWithinTransactionExecutor) CustomerRepository {
	return &sqliteCustomerRepository{trx: trx, executor: e}
}

func (r *sqliteCustomerRepository) InitSchema(ctx context.Context) error {
	ex := r.executor.Executor(ctx)
	if _, err := ex.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return errors.NewStorageErr(err)
	}
	if _, err := ex.ExecContext(ctx, customersSchema); err != nil {
		return errors.NewStorageErr(err)
	}
	return nil
}

func (r *sqliteCustomerRepository) Create(ctx context.Context, c model.NewCustomer) (int64, error) {
	n := c.Normalized()
	q := `INSERT INTO customers (name, birthday, email, phone, address, preferred_contact)
		  VALUES (?, ?, ?, ?, ?, ?)`

	var id int64
	err := r.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		res, err := r.executor.Executor(ctx).ExecContext(ctx, q, n.Name, n.Birthday, n.Email, n.Phone, n.Address, string(n.PreferredContact))
		if err != nil {
			return err
		}

		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, errors.NewStorageErr(err)
	}
	return id, nil
}

func (r *sqliteCustomerRepository) FindAll(ctx context.Context) (model.Table, error) {
	rows, err := r.executor.Executor(ctx).QueryContext(ctx, "SELECT * FROM customers")
	if err != nil {
		return model.Table{}, errors.NewStorageErr(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return model.Table{}, errors.NewStorageErr(err)
	}

	data := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return model.Table{}, errors.NewStorageErr(err)
		}
		data = append(data, values)
	}

	if err := rows.Err(); err != nil {
		return model.Table{}, errors.NewStorageErr(err)
	}
	return model.Table{Columns: columns, Rows: data}, nil
}
