// Package checkout validates the buyer's checkout form and turns it into an
// order record.
package checkout

import (
	"strings"
)

// PaymentMethod is a label only; no payment is processed.
type PaymentMethod string

const (
	Cash   PaymentMethod = "Cash"
	PayPal PaymentMethod = "PayPal"
)

// ParsePaymentMethod accepts the labels case-insensitively. An empty label
// selects Cash.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cash":
		return Cash, true
	case "paypal":
		return PayPal, true
	}
	return "", false
}

// Form is the editable checkout draft.
type Form struct {
	FullName      string
	ContactInfo   string
	PaymentMethod string
}

// OrderRecord is the buyer data of one submission attempt.
type OrderRecord struct {
	FullName      string
	ContactInfo   string
	PaymentMethod PaymentMethod
}

// BuildOrder validates f in a fixed order and stops at the first failure.
// lineCount is the number of lines in the cart being checked out.
func BuildOrder(f Form, lineCount int) (OrderRecord, error) {
	name := strings.TrimSpace(f.FullName)
	if name == "" {
		return OrderRecord{}, newValidationError(FieldFullName, ErrMsgFullNameRequired)
	}
	contact := strings.TrimSpace(f.ContactInfo)
	if contact == "" {
		return OrderRecord{}, newValidationError(FieldContactInfo, ErrMsgContactRequired)
	}
	method, ok := ParsePaymentMethod(f.PaymentMethod)
	if !ok {
		return OrderRecord{}, newValidationError(FieldPaymentMethod, ErrMsgUnknownPayment)
	}
	if lineCount <= 0 {
		return OrderRecord{}, newValidationError(FieldCart, ErrMsgCartEmpty)
	}
	return OrderRecord{
		FullName:      name,
		ContactInfo:   contact,
		PaymentMethod: method,
	}, nil
}
