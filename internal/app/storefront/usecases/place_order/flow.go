package place_order

import (
	"maps"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// State is a step of the checkout flow.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

// Outcome is how the last submission ended. A failed submission leaves the
// flow editing so the customer can retry.
type Outcome string

const (
	OutcomeCashOnDelivery Outcome = "cod"
	OutcomeGateway        Outcome = "gateway"
	OutcomeFailed         Outcome = "failed"
)

// Fallback messages when the order API gives none.
const (
	MsgOrderFailed        = "Order creation failed"
	MsgUnexpectedError    = "An error occurred"
	MsgGatewayUnavailable = "Payment gateway unavailable"
)

// View is a snapshot of a flow.
type View struct {
	State         State                           `json:"state"`
	Outcome       Outcome                         `json:"outcome,omitempty"`
	Form          domain.CheckoutForm             `json:"form"`
	PaymentMethod string                          `json:"payment_method,omitempty"`
	Errors        map[domain.CheckoutField]string `json:"errors,omitempty"`
	FirstInvalid  domain.CheckoutField            `json:"first_invalid,omitempty"`
	Busy          bool                            `json:"busy"`
	Message       string                          `json:"message,omitempty"`
	RedirectURL   string                          `json:"redirect_url,omitempty"`
}

// Flow is the checkout state of one session. All methods are safe for
// concurrent use; busy guards the single in-flight submission.
type Flow struct {
	mu      sync.Mutex
	state   State
	outcome Outcome
	form    domain.CheckoutForm
	method  string
	errors  map[domain.CheckoutField]string
	first   domain.CheckoutField
	busy    bool
	message string
	target  string
}

func newFlow() *Flow {
	return &Flow{state: StateEditing, errors: map[domain.CheckoutField]string{}}
}

// View returns a copy of the flow state.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return View{
		State:         f.state,
		Outcome:       f.outcome,
		Form:          f.form,
		PaymentMethod: f.method,
		Errors:        maps.Clone(f.errors),
		FirstInvalid:  f.first,
		Busy:          f.busy,
		Message:       f.message,
		RedirectURL:   f.target,
	}
}

// edit sets one field and clears its error.
func (f *Flow) edit(field domain.CheckoutField, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	form, err := f.form.Set(field, value)
	if err != nil {
		return err
	}
	f.form = form
	delete(f.errors, field)
	if f.first == field {
		f.first = ""
	}
	f.toEditing()
	return nil
}

func (f *Flow) setMethod(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method = method
}

// begin claims the flow for a submission. form replaces the current form
// when given and method when non-empty.
func (f *Flow) begin(form *domain.CheckoutForm, method string) (domain.CheckoutForm, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return domain.CheckoutForm{}, "", domain.ErrSubmissionInFlight
	}
	if form != nil {
		normalized := *form
		normalized.Phone = domain.NormalizePhone(normalized.Phone)
		f.form = normalized
	}
	if method != "" {
		f.method = method
	}
	f.busy = true
	f.state = StateValidating
	f.outcome = ""
	f.message = ""
	f.target = ""
	return f.form, f.method, nil
}

func (f *Flow) invalid(verr *domain.ValidationError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors = maps.Clone(verr.Fields)
	f.first = verr.First
	f.busy = false
	f.toEditing()
}

func (f *Flow) validated() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors = map[domain.CheckoutField]string{}
	f.first = ""
}

// abort returns to editing with a notification message.
func (f *Flow) abort(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.busy = false
	f.message = message
	f.toEditing()
}

func (f *Flow) submitting() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateSubmitting
}

// failed records the failure and hands the flow back to editing.
func (f *Flow) failed(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.busy = false
	f.message = message
	f.toEditing()
	f.outcome = OutcomeFailed
}

func (f *Flow) succeeded(outcome Outcome, target string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.busy = false
	f.state = StateSucceeded
	f.outcome = outcome
	f.target = target
}

func (f *Flow) toEditing() {
	f.state = StateEditing
	f.outcome = ""
	f.target = ""
}

// FlowRegistry keeps one Flow per session.
type FlowRegistry struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

func NewFlowRegistry() *FlowRegistry {
	return &FlowRegistry{flows: make(map[string]*Flow)}
}

// Get returns the session's flow, creating it on first use.
func (r *FlowRegistry) Get(sessionID string) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	flow, ok := r.flows[sessionID]
	if !ok {
		flow = newFlow()
		r.flows[sessionID] = flow
	}
	return flow
}

// Drop forgets the session's flow.
func (r *FlowRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, sessionID)
}
