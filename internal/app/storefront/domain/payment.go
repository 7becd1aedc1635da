package domain

// Payment method labels as the storefront shows them.
const (
	MethodCashOnDelivery = "cashOnDelivery"
	MethodPayNow         = "Pay Now"
)

// Backend payment codes.
const (
	CodeCashOnDelivery = "cod"
	CodeGateway        = "ssl"
)

// DefaultGatewayMethod is offered when the gateway is active but lists no
// methods of its own.
var DefaultGatewayMethod = PaymentMethod{Name: MethodPayNow, Logo: "/assets/payOnline.jpg"}

// BackendPaymentCode maps a storefront label to the order API code. Unknown
// labels pass through unchanged; an empty label is rejected.
func BackendPaymentCode(label string) (string, error) {
	switch label {
	case "":
		return "", ErrInvalidPaymentMethod
	case MethodCashOnDelivery:
		return CodeCashOnDelivery, nil
	case MethodPayNow:
		return CodeGateway, nil
	default:
		return label, nil
	}
}

// AvailablePaymentMethods lists cash on delivery followed by the online
// gateway methods when the gateway is enabled.
func AvailablePaymentMethods(b Business) []PaymentMethod {
	methods := []PaymentMethod{{Name: MethodCashOnDelivery}}
	if !b.Gateway.Enabled() {
		return methods
	}
	if len(b.Gateway.PaymentMethods) == 0 {
		return append(methods, DefaultGatewayMethod)
	}
	return append(methods, b.Gateway.PaymentMethods...)
}
