package domain

// AuthorizationToken is the opaque reference to an approved transaction:
// the processor call number (NUMAPPEL) concatenated with the transaction
// number (NUMTRANS), each zero-padded to ten digits. Dependent calls
// (capture, void, credit) echo both halves back.
type AuthorizationToken string

const referenceWidth = 10

// CallNumber returns the NUMAPPEL half of the token.
func (t AuthorizationToken) CallNumber() string {
	if !t.Valid() {
		return ""
	}
	return string(t)[:referenceWidth]
}

// TransactionNumber returns the NUMTRANS half of the token.
func (t AuthorizationToken) TransactionNumber() string {
	if !t.Valid() {
		return ""
	}
	return string(t)[referenceWidth : 2*referenceWidth]
}

// Valid reports whether the token carries both reference halves.
func (t AuthorizationToken) Valid() bool {
	return len(t) == 2*referenceWidth
}

// SubscriptionHandle identifies a Paybox Direct Plus subscriber
// agreement. The state lives on the processor side; every call re-sends
// the full handle.
type SubscriptionHandle struct {
	SubscriptionID string
	OrderID        string
}

// Validate checks the handle is complete enough to reference a
// subscriber on the wire.
func (h SubscriptionHandle) Validate() error {
	if h.SubscriptionID == "" {
		return NewValidationError("REFABONNE", "subscription id is required")
	}
	if h.OrderID == "" {
		return NewValidationError("REFERENCE", "order id is required")
	}
	return nil
}

// Response is the outcome of a delivered call. A decline is a normal
// Response with Success=false; only transport and protocol failures are
// reported through the error channel.
type Response struct {
	// Success is true only for the processor's approved status code.
	Success bool

	// Message is human readable: a fixed approval message on success,
	// otherwise the processor's own comment passed through verbatim
	// (typically French, preserved byte-for-byte).
	Message string

	// Code is the raw CODEREPONSE status.
	Code string

	// Authorization references the approved transaction; empty on
	// declines.
	Authorization AuthorizationToken

	// Unavailable marks the processor's temporary-unavailability status
	// codes, the one decline class for which re-sending is safe.
	Unavailable bool

	// Fields holds every decoded response field, including keys this
	// client does not interpret.
	Fields map[string]string
}
