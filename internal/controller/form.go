package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cerrors "github.com/umalmyha/customers-intake/internal/errors"
	"github.com/umalmyha/customers-intake/internal/model"
	"github.com/umalmyha/customers-intake/internal/service"
)

// Field identifies form input, values are in tab order
type Field int

const (
	FieldName Field = iota
	FieldBirthday
	FieldEmail
	FieldPhone
	FieldAddress
	FieldPreferredContact
)

// Fields returns all form fields in tab order
func Fields() []Field {
	return []Field{FieldName, FieldBirthday, FieldEmail, FieldPhone, FieldAddress, FieldPreferredContact}
}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldBirthday:
		return "Birthday (YYYY-MM-DD)"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldAddress:
		return "Address"
	case FieldPreferredContact:
		return "Preferred Contact"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// FormValues holds raw field contents exactly as typed
type FormValues struct {
	Name             string
	Birthday         string
	Email            string
	Phone            string
	Address          string
	PreferredContact model.ContactMethod
}

func emptyForm() FormValues {
	return FormValues{PreferredContact: model.DefaultContactMethod}
}

// Get returns value of single field
func (v FormValues) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldBirthday:
		return v.Birthday
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldAddress:
		return v.Address
	case FieldPreferredContact:
		return string(v.PreferredContact)
	default:
		return ""
	}
}

// FormController keeps pending input and turns submit into a stored record
type FormController struct {
	customerSvc service.CustomerService
	notifier    Notifier
	values      FormValues
	focus       Field
}

func NewFormController(customerSvc service.CustomerService, notifier Notifier) *FormController {
	return &FormController{
		customerSvc: customerSvc,
		notifier:    notifier,
		values:      emptyForm(),
		focus:       FieldName,
	}
}

func (c *FormController) Values() FormValues {
	return c.values
}

// Focus returns field which receives input next
func (c *FormController) Focus() Field {
	return c.focus
}

// Set replaces content of a field and moves focus to it
func (c *FormController) Set(f Field, value string) {
	switch f {
	case FieldName:
		c.values.Name = value
	case FieldBirthday:
		c.values.Birthday = value
	case FieldEmail:
		c.values.Email = value
	case FieldPhone:
		c.values.Phone = value
	case FieldAddress:
		c.values.Address = value
	case FieldPreferredContact:
		c.values.PreferredContact = model.ContactMethod(value)
	default:
		return
	}
	c.focus = f
}

// Submit validates and stores current input. Input is kept on any failure and cleared on success
func (c *FormController) Submit(ctx context.Context) (int64, bool) {
	input := model.NewCustomer{
		Name:             c.values.Name,
		Birthday:         c.values.Birthday,
		Email:            c.values.Email,
		Phone:            c.values.Phone,
		Address:          strings.TrimSpace(c.values.Address),
		PreferredContact: c.values.PreferredContact,
	}

	id, err := c.customerSvc.Register(ctx, input)
	if err != nil {
		var ve *cerrors.ValidationErr
		if errors.As(err, &ve) {
			c.notifier.Error(titleValidationError, ve.Error())
		} else {
			c.notifier.Error(titleDatabaseError, fmt.Sprintf("Could not save customer.\n\n%s", err))
		}
		return 0, false
	}

	c.notifier.Info(titleSuccess, fmt.Sprintf("Customer saved with ID #%d.", id))
	c.Clear()
	return id, true
}

// Clear resets every field to its default and focuses the first one
func (c *FormController) Clear() {
	c.values = emptyForm()
	c.focus = FieldName
}

// MoveFocus puts cursor on given field without touching its content
func (c *FormController) MoveFocus(f Field) {
	c.focus = f
}
