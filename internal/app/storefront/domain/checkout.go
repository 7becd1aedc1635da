package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckoutField names a delivery form field.
type CheckoutField string

const (
	FieldName         CheckoutField = "name"
	FieldPhone        CheckoutField = "phone"
	FieldAddress      CheckoutField = "address"
	FieldDeliveryArea CheckoutField = "delivery_area"
	FieldNote         CheckoutField = "note"
)

// CheckoutFields is the order in which invalid fields are reported.
var CheckoutFields = []CheckoutField{FieldName, FieldPhone, FieldAddress, FieldDeliveryArea, FieldNote}

// Validation messages shown to the customer.
const (
	MsgNameTooShort    = "Enter a name with at least 3 characters"
	MsgPhoneRequired   = "Enter your phone number"
	MsgPhoneInvalid    = "Enter a valid phone number (01xxxxxxxxx)"
	MsgAddressRequired = "Enter your address"
	MsgAddressTooShort = "Enter a delivery address with at least 10 characters"
	MsgAreaRequired    = "Select a delivery area"
	MsgNoteTooShort    = "Enter a note with at least 5 characters"
)

var phonePattern = regexp.MustCompile(`^01\d{9}$`)

// CheckoutForm is the delivery information of an order.
type CheckoutForm struct {
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	DeliveryArea DeliveryArea `json:"delivery_area"`
	Note         string       `json:"note,omitempty"`
}

// Set returns a copy of the form with field replaced. Phone numbers are
// normalized on the way in.
func (f CheckoutForm) Set(field CheckoutField, value string) (CheckoutForm, error) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldPhone:
		f.Phone = NormalizePhone(value)
	case FieldAddress:
		f.Address = value
	case FieldDeliveryArea:
		f.DeliveryArea = DeliveryArea(value)
	case FieldNote:
		f.Note = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f, nil
}

// NormalizePhone strips spaces and dashes and rewrites an international
// +880 / 880 prefix to the local leading 0.
func NormalizePhone(s string) string {
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "+880"):
		s = "0" + strings.TrimPrefix(s, "+880")
	case strings.HasPrefix(s, "880") && len(s) == 13:
		s = "0" + strings.TrimPrefix(s, "880")
	}
	// "+880 017..." keeps the trunk 0 after the country code.
	if strings.HasPrefix(s, "00") {
		s = s[1:]
	}
	return s
}

// ValidationError carries every field error of a form and the first
// invalid field in CheckoutFields order.
type ValidationError struct {
	Fields map[CheckoutField]string
	First  CheckoutField
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.First, e.Fields[e.First])
}

// Validate checks every field and returns a *ValidationError when any is
// invalid, nil otherwise.
func (f CheckoutForm) Validate() error {
	errs := make(map[CheckoutField]string)

	if name := strings.TrimSpace(f.Name); len([]rune(name)) < 3 {
		errs[FieldName] = MsgNameTooShort
	}

	phone := strings.TrimSpace(f.Phone)
	switch {
	case phone == "":
		errs[FieldPhone] = MsgPhoneRequired
	case !phonePattern.MatchString(phone):
		errs[FieldPhone] = MsgPhoneInvalid
	}

	address := strings.TrimSpace(f.Address)
	switch {
	case address == "":
		errs[FieldAddress] = MsgAddressRequired
	case len([]rune(address)) < 10:
		errs[FieldAddress] = MsgAddressTooShort
	}

	if !f.DeliveryArea.Valid() {
		errs[FieldDeliveryArea] = MsgAreaRequired
	}

	if note := strings.TrimSpace(f.Note); note != "" && len([]rune(note)) < 5 {
		errs[FieldNote] = MsgNoteTooShort
	}

	if len(errs) == 0 {
		return nil
	}
	for _, field := range CheckoutFields {
		if _, ok := errs[field]; ok {
			return &ValidationError{Fields: errs, First: field}
		}
	}
	return nil
}
