package infra

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-intake/internal/repository"
	"github.com/umalmyha/customers-intake/internal/service"
	"github.com/umalmyha/customers-intake/internal/validation"
	"github.com/umalmyha/customers-intake/pkg/db/transactor"
)

// CustomerService wires repository, validator and logger over an opened store
func CustomerService(db *sql.DB, logger logrus.FieldLogger) (service.CustomerService, error) {
	// Transactors
	trx := transactor.NewSQLTransactor(db)
	executor := transactor.NewSQLWithinTransactionExecutor(db)

	// Repositories
	customerRps := repository.NewSQLiteCustomerRepository(trx, executor)

	// Validators
	v, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer validator - %w", err)
	}

	return service.NewCustomerService(customerRps, v, logger), nil
}
