package checkout

// Field names the form input a ValidationError refers to.
type Field string

const (
	FieldFullName      Field = "fullName"
	FieldContactInfo   Field = "contactInfo"
	FieldPaymentMethod Field = "paymentMethod"
	FieldCart          Field = "cart"
)

const (
	ErrMsgFullNameRequired = "full name required"
	ErrMsgContactRequired  = "contact info required"
	ErrMsgUnknownPayment   = "unknown payment method"
	ErrMsgCartEmpty        = "cart is empty"
)

// ValidationError is a missing or invalid checkout field. It is shown inline
// and never changes state.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(field Field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
