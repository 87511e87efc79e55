package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	cerrors "github.com/umalmyha/customers-intake/internal/errors"
	"github.com/umalmyha/customers-intake/internal/model"
)

// BirthdayLayout is the only accepted birthday format (YYYY-MM-DD)
const BirthdayLayout = "2006-01-02"

const minPhoneDigits = 10

// \s is ASCII only in RE2, \p{Z} adds unicode separators such as no-break space
var emailRegexp = regexp.MustCompile(`^[^@\s\p{Z}]+@[^@\s\p{Z}]+\.[^@\s\p{Z}]+$`)

// field messages, the key is struct field name of customerInput
var messages = map[string]string{
	"Name":             "Name is required.",
	"Birthday":         "Birthday must be in YYYY-MM-DD format (e.g., 2001-09-17).",
	"Email":            "Please enter a valid email (e.g., name@example.com).",
	"Phone":            "Phone should include at least 10 digits.",
	"Address":          "Address is required.",
	"PreferredContact": "Preferred contact must be Email, Phone, or Mail.",
}

// customerInput declares rules in the order they are checked, first failure wins
type customerInput struct {
	Name             string `validate:"notblank"`
	Birthday         string `validate:"notblank,isodate"`
	Email            string `validate:"notblank,basicemail"`
	Phone            string `validate:"phonedigits"`
	Address          string `validate:"notblank"`
	PreferredContact string `validate:"contactmethod"`
}

// CustomerValidator checks form input before any write
type CustomerValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// New builds CustomerValidator with custom rules and english messages
func New() (*CustomerValidator, error) {
	v := validator.New()

	rules := map[string]validator.Func{
		"notblank":      notBlank,
		"isodate":       isoDate,
		"basicemail":    basicEmail,
		"phonedigits":   phoneDigits,
		"contactmethod": contactMethod,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register validation %s - %w", tag, err)
		}
	}

	english := en.New()
	trans, found := ut.New(english, english).GetTranslator(english.Locale())
	if !found {
		return nil, fmt.Errorf("translator for locale %s not found", english.Locale())
	}

	for field, msg := range messages {
		if err := trans.Add(field, msg, false); err != nil {
			return nil, fmt.Errorf("failed to add message for %s - %w", field, err)
		}
	}

	for _, tag := range []string{"notblank", "isodate", "basicemail", "phonedigits", "contactmethod"} {
		if err := v.RegisterTranslation(tag, trans, noopRegistration, fieldMessage); err != nil {
			return nil, fmt.Errorf("failed to register translation for %s - %w", tag, err)
		}
	}

	return &CustomerValidator{validator: v, translator: trans}, nil
}

// Validate returns *errors.ValidationErr describing the first rule which failed or nil
func (v *CustomerValidator) Validate(c model.NewCustomer) error {
	in := customerInput{
		Name:             c.Name,
		Birthday:         c.Birthday,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		PreferredContact: string(c.PreferredContact),
	}

	err := v.validator.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		first := ve[0]
		return cerrors.NewValidationErr(first.Field(), first.Translate(v.translator))
	}
	return cerrors.NewValidationErr("", err.Error())
}

var defaultValidator = mustNew()

func mustNew() *CustomerValidator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateCustomer reports whether raw form values are acceptable and, if not, why
func ValidateCustomer(name, birthday, email, phone, address, contactMethod string) (bool, string) {
	err := defaultValidator.Validate(model.NewCustomer{
		Name:             name,
		Birthday:         birthday,
		Email:            email,
		Phone:            phone,
		Address:          address,
		PreferredContact: model.ContactMethod(contactMethod),
	})
	if err != nil {
		return false, err.Error()
	}
	return true, ""
}

func noopRegistration(ut.Translator) error {
	return nil
}

func fieldMessage(trans ut.Translator, fe validator.FieldError) string {
	msg, err := trans.T(fe.Field())
	if err != nil {
		return fe.Error()
	}
	return msg
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(BirthdayLayout, strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func basicEmail(fl validator.FieldLevel) bool {
	return emailRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
}

func phoneDigits(fl validator.FieldLevel) bool {
	return len(model.NormalizePhone(fl.Field().String())) >= minPhoneDigits
}

func contactMethod(fl validator.FieldLevel) bool {
	return model.ContactMethod(fl.Field().String()).Valid()
}
