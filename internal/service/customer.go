package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-intake/internal/model"
	"github.com/umalmyha/customers-intake/internal/repository"
)

// CustomerValidator rejects malformed input, returned error is *errors.ValidationErr
type CustomerValidator interface {
	Validate(model.NewCustomer) error
}

type CustomerService interface {
	InitStore(context.Context) error
	Register(context.Context, model.NewCustomer) (int64, error)
	FindAll(context.Context) (model.Table, error)
}

type customerService struct {
	customerRps repository.CustomerRepository
	validator   CustomerValidator
	logger      logrus.FieldLogger
}

func NewCustomerService(customerRps repository.CustomerRepository, v CustomerValidator, logger logrus.FieldLogger) CustomerService {
	return &customerService{
		customerRps: customerRps,
		validator:   v,
		logger:      logger,
	}
}

func (s *customerService) InitStore(ctx context.Context) error {
	if err := s.customerRps.InitSchema(ctx); err != nil {
		s.logger.Errorf("failed to ensure customers schema - %v", err)
		return err
	}
	s.logger.Debug("customers schema is in place")
	return nil
}

// Register validates input and stores it, nothing is written if validation fails
func (s *customerService) Register(ctx context.Context, c model.NewCustomer) (int64, error) {
	if err := s.validator.Validate(c); err != nil {
		s.logger.WithError(err).Debug("customer input rejected")
		return 0, err
	}

	id, err := s.customerRps.Create(ctx, c)
	if err != nil {
		s.logger.Errorf("failed to store customer - %v", err)
		return 0, err
	}

	s.logger.WithField("id", id).Info("customer stored")
	return id, nil
}

func (s *customerService) FindAll(ctx context.Context) (model.Table, error) {
	tbl, err := s.customerRps.FindAll(ctx)
	if err != nil {
		s.logger.Errorf("failed to read customers - %v", err)
		return model.Table{}, err
	}
	return tbl, nil
}
