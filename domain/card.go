package domain

import (
	"fmt"
	"strings"
)

// CreditCard is the payment instrument for new transactions. For
// subscriber operations Number carries the token Paybox returned on
// registration instead of a real PAN.
type CreditCard struct {
	Number     string
	ExpMonth   int
	ExpYear    int
	CVV        string
	HolderName string
}

// ExpDate returns the expiry in the MMYY wire format.
func (c CreditCard) ExpDate() string {
	return fmt.Sprintf("%02d%02d", c.ExpMonth, c.ExpYear%100)
}

// Masked returns the card number with all but the last four digits
// hidden, safe for logging.
func (c CreditCard) Masked() string {
	if len(c.Number) <= 4 {
		return strings.Repeat("*", len(c.Number))
	}
	return strings.Repeat("*", len(c.Number)-4) + c.Number[len(c.Number)-4:]
}

// Validate checks the instrument has everything a new transaction needs.
func (c CreditCard) Validate() error {
	if c.Number == "" {
		return NewValidationError("PORTEUR", "card number is required")
	}
	if c.ExpMonth < 1 || c.ExpMonth > 12 {
		return NewValidationError("DATEVAL", "expiry month must be between 1 and 12")
	}
	if c.ExpYear <= 0 {
		return NewValidationError("DATEVAL", "expiry year is required")
	}
	return nil
}

// Address is the optional billing address, required by Paybox only for
// certain card types.
type Address struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Zip     string
	Country string
}
