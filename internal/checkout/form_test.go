package checkout

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrder_Valid(t *testing.T) {
	rec, err := BuildOrder(Form{FullName: "  Ada Lovelace ", ContactInfo: "+33 6 12 34 56 78"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", rec.FullName)
	assert.Equal(t, "+33 6 12 34 56 78", rec.ContactInfo)
	assert.Equal(t, Cash, rec.PaymentMethod)
}

func TestBuildOrder_PayPal(t *testing.T) {
	rec, err := BuildOrder(Form{FullName: "a", ContactInfo: "b", PaymentMethod: "paypal"}, 1)
	require.NoError(t, err)
	assert.Equal(t, PayPal, rec.PaymentMethod)
}

func TestBuildOrder_ValidationOrder(t *testing.T) {
	cases := []struct {
		name  string
		form  Form
		lines int
		field Field
		msg   string
	}{
		{"everything missing", Form{PaymentMethod: "card"}, 0, FieldFullName, ErrMsgFullNameRequired},
		{"blank name", Form{FullName: "   ", ContactInfo: "x"}, 1, FieldFullName, ErrMsgFullNameRequired},
		{"missing contact", Form{FullName: "a", PaymentMethod: "card"}, 0, FieldContactInfo, ErrMsgContactRequired},
		{"bad payment", Form{FullName: "a", ContactInfo: "b", PaymentMethod: "card"}, 0, FieldPaymentMethod, ErrMsgUnknownPayment},
		{"empty cart", Form{FullName: "a", ContactInfo: "b"}, 0, FieldCart, ErrMsgCartEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildOrder(tc.form, tc.lines)
			require.Error(t, err)

			var v *ValidationError
			require.True(t, errors.As(err, &v))
			assert.Equal(t, tc.field, v.Field)
			assert.Equal(t, tc.msg, v.Error())
		})
	}
}

func TestValidationError_Wrapped(t *testing.T) {
	_, err := BuildOrder(Form{}, 1)

	var v *ValidationError
	require.True(t, errors.As(errors.Wrap(err, "submit"), &v))
	assert.Equal(t, FieldFullName, v.Field)
	assert.False(t, errors.As(errors.New("boom"), &v))
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("CASH")
	assert.True(t, ok)
	assert.Equal(t, Cash, m)

	_, ok = ParsePaymentMethod("bitcoin")
	assert.False(t, ok)
}
