package paybox

import (
	"time"

	"github.com/kevin07696/paybox-client/domain"
)

// Options carries the per-call extras recognized by every operation.
type Options struct {
	// OrderID is echoed back by Paybox as REFERENCE. Required on every
	// call.
	OrderID string

	// SubscriptionID identifies the subscriber agreement. Required for
	// every Direct Plus operation.
	SubscriptionID string

	// Description is a free-text order description. Paybox ignores it on
	// the wire; kept for parity with caller bookkeeping and logging.
	Description string

	// BillingAddress is required by Paybox only for certain card types.
	BillingAddress *domain.Address

	// Amount restates the original amount on void, whose signature does
	// not carry one.
	Amount domain.Money

	// Expiry re-supplies the original card expiry (MMYY) on void; Paybox
	// does not retain card data across calls. When empty the protocol
	// filler is sent instead.
	Expiry string
}

// Void paths send filler card data: Paybox insists on the fields being
// present but no longer has a card to check them against.
const (
	voidCardFiller   = "000000000000000000"
	voidExpiryFiller = "0000"
)

const (
	wireDateFormat  = "02012006150405"
	defaultActivity = "024"
)

// requestBuilder assembles the full field set for one operation. It
// validates locally everything Paybox would reject as "mandatory values
// missing", so an incomplete call never costs a billed round trip.
type requestBuilder struct {
	site     string
	rank     string
	key      string
	currency string // numeric DEVISE value
	activity string
	seq      *questionSequence
	now      func() time.Time
}

// base lays down the fields common to every call: credentials, protocol
// version, operation code and fresh correlation numbers. Each call gets
// a new question number; field sets are never reused.
func (b *requestBuilder) base(tranType TransactionType) FieldSet {
	version := versionDirect
	if tranType.recurring() {
		version = versionDirectPlus
	}
	fs := FieldSet{}
	fs.Set(FieldVersion, version)
	fs.Set(FieldType, string(tranType))
	fs.Set(FieldSite, b.site)
	fs.Set(FieldRank, b.rank)
	fs.Set(FieldKey, b.key)
	fs.Set(FieldQuestionNumber, b.seq.Next())
	fs.Set(FieldRequestDate, b.now().Format(wireDateFormat))
	fs.Set(FieldActivity, b.activity)
	return fs
}

func (b *requestBuilder) addInvoice(fs FieldSet, amount domain.Money, opts Options) error {
	if opts.OrderID == "" {
		return domain.NewValidationError(string(FieldReference), "order id is required")
	}
	if amount <= 0 {
		return domain.NewValidationError(string(FieldAmount), "amount must be a positive number of minor units")
	}
	fs.Set(FieldAmount, encodeAmount(amount))
	fs.Set(FieldCurrency, b.currency)
	fs.Set(FieldReference, opts.OrderID)
	return nil
}

func addCard(fs FieldSet, card domain.CreditCard) error {
	if err := card.Validate(); err != nil {
		return err
	}
	fs.Set(FieldCardNumber, card.Number)
	fs.Set(FieldExpiry, card.ExpDate())
	fs.Set(FieldCVV, card.CVV)
	return nil
}

func addReference(fs FieldSet, token domain.AuthorizationToken) error {
	if token == "" {
		return domain.NewValidationError(string(FieldCallNumber), "authorization reference is required")
	}
	if !token.Valid() {
		return domain.NewValidationError(string(FieldCallNumber), "authorization reference must carry both call and transaction numbers")
	}
	fs.Set(FieldCallNumber, token.CallNumber())
	fs.Set(FieldTransNumber, token.TransactionNumber())
	return nil
}

func addSubscriber(fs FieldSet, opts Options) error {
	if opts.SubscriptionID == "" {
		return domain.NewValidationError(string(FieldSubscriberRef), "subscription id is required")
	}
	fs.Set(FieldSubscriberRef, opts.SubscriptionID)
	return nil
}

// NewTransaction builds an authorize or purchase request: fresh card,
// no prior reference.
func (b *requestBuilder) NewTransaction(tranType TransactionType, amount domain.Money, card domain.CreditCard, opts Options) (FieldSet, error) {
	fs := b.base(tranType)
	if err := b.addInvoice(fs, amount, opts); err != nil {
		return nil, err
	}
	if err := addCard(fs, card); err != nil {
		return nil, err
	}
	return fs, nil
}

// Dependent builds a capture or credit request against a prior
// authorization.
func (b *requestBuilder) Dependent(tranType TransactionType, amount domain.Money, token domain.AuthorizationToken, opts Options) (FieldSet, error) {
	fs := b.base(tranType)
	if err := b.addInvoice(fs, amount, opts); err != nil {
		return nil, err
	}
	if err := addReference(fs, token); err != nil {
		return nil, err
	}
	if tranType.recurring() {
		if err := addSubscriber(fs, opts); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// Void builds a cancellation of a prior authorization or purchase. The
// original amount must be restated through opts.Amount, and the card
// fields are re-sent: the real expiry when the caller still has it,
// protocol filler otherwise.
func (b *requestBuilder) Void(tranType TransactionType, token domain.AuthorizationToken, opts Options) (FieldSet, error) {
	fs, err := b.Dependent(tranType, opts.Amount, token, opts)
	if err != nil {
		return nil, err
	}
	fs.Set(FieldCardNumber, voidCardFiller)
	if opts.Expiry != "" {
		fs.Set(FieldExpiry, opts.Expiry)
	} else {
		fs.Set(FieldExpiry, voidExpiryFiller)
	}
	return fs, nil
}

// Subscriber builds the Direct Plus card-bearing operations: register,
// update, and the authorize/purchase variants where PORTEUR carries the
// token Paybox returned on registration.
func (b *requestBuilder) Subscriber(tranType TransactionType, amount domain.Money, card domain.CreditCard, opts Options) (FieldSet, error) {
	fs, err := b.NewTransaction(tranType, amount, card, opts)
	if err != nil {
		return nil, err
	}
	if err := addSubscriber(fs, opts); err != nil {
		return nil, err
	}
	return fs, nil
}

// SubscriberCancel builds the terminal delete of a subscriber
// agreement. No amount is involved; only the correlation data.
func (b *requestBuilder) SubscriberCancel(handle domain.SubscriptionHandle) (FieldSet, error) {
	if err := handle.Validate(); err != nil {
		return nil, err
	}
	fs := b.base(TypeSubscriberDelete)
	fs.Set(FieldReference, handle.OrderID)
	fs.Set(FieldSubscriberRef, handle.SubscriptionID)
	return fs, nil
}
