package model

import (
	"strings"
	"time"
)

// ContactMethod specifies how the business should reach the customer
type ContactMethod string

const (
	// ContactEmail means customer prefers email
	ContactEmail ContactMethod = "Email"
	// ContactPhone means customer prefers phone calls
	ContactPhone ContactMethod = "Phone"
	// ContactMail means customer prefers postal mail
	ContactMail ContactMethod = "Mail"
)

// DefaultContactMethod is preselected on an empty form
const DefaultContactMethod = ContactEmail

// ContactMethods lists allowed contact methods in display order
func ContactMethods() []ContactMethod {
	return []ContactMethod{ContactEmail, ContactPhone, ContactMail}
}

// Valid reports whether m is exactly one of the allowed contact methods
func (m ContactMethod) Valid() bool {
	for _, allowed := range ContactMethods() {
		if m == allowed {
			return true
		}
	}
	return false
}

// NewCustomer is the form input captured at submit time
type NewCustomer struct {
	Name             string
	Birthday         string
	Email            string
	Phone            string
	Address          string
	PreferredContact ContactMethod
}

// Normalized returns copy ready to be stored: text fields trimmed, phone reduced to digits
func (c NewCustomer) Normalized() NewCustomer {
	return NewCustomer{
		Name:             strings.TrimSpace(c.Name),
		Birthday:         strings.TrimSpace(c.Birthday),
		Email:            strings.TrimSpace(c.Email),
		Phone:            NormalizePhone(c.Phone),
		Address:          strings.TrimSpace(c.Address),
		PreferredContact: c.PreferredContact,
	}
}

// Customer is customer model entity
type Customer struct {
	ID               int64
	Name             string
	Birthday         string
	Email            string
	Phone            string
	Address          string
	PreferredContact ContactMethod
	CreatedAt        time.Time
}

// NormalizePhone keeps only ASCII digits of raw phone input
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
