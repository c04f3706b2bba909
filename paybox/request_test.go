package paybox

import (
	"testing"
	"time"

	"github.com/kevin07696/paybox-client/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *requestBuilder {
	return &requestBuilder{
		site:     "1999888",
		rank:     "32",
		key:      "1999888I",
		currency: "978",
		activity: defaultActivity,
		seq:      newQuestionSequence(time.Now()),
		now: func() time.Time {
			return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
		},
	}
}

func testCard() domain.CreditCard {
	return domain.CreditCard{
		Number:   "1111222233334444",
		ExpMonth: 12,
		ExpYear:  2027,
		CVV:      "123",
	}
}

const testToken = domain.AuthorizationToken("00000369250000051725")

func TestNewTransactionMandatoryFields(t *testing.T) {
	b := newTestBuilder()

	fs, err := b.NewTransaction(TypePurchase, 100, testCard(), Options{OrderID: "1"})
	require.NoError(t, err)

	assert.Equal(t, "00104", fs.Get(FieldVersion))
	assert.Equal(t, "00003", fs.Get(FieldType))
	assert.Equal(t, "1999888", fs.Get(FieldSite))
	assert.Equal(t, "32", fs.Get(FieldRank))
	assert.Equal(t, "1999888I", fs.Get(FieldKey))
	assert.Equal(t, "0000000100", fs.Get(FieldAmount))
	assert.Equal(t, "978", fs.Get(FieldCurrency))
	assert.Equal(t, "1", fs.Get(FieldReference))
	assert.Equal(t, "1111222233334444", fs.Get(FieldCardNumber))
	assert.Equal(t, "1227", fs.Get(FieldExpiry))
	assert.Equal(t, "123", fs.Get(FieldCVV))
	assert.Equal(t, "024", fs.Get(FieldActivity))
	assert.Equal(t, "14032026150926", fs.Get(FieldRequestDate))
	assert.Len(t, fs.Get(FieldQuestionNumber), questionWidth)
}

func TestNewTransactionValidation(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name      string
		amount    domain.Money
		card      domain.CreditCard
		opts      Options
		wantField string
	}{
		{
			name:      "missing order id",
			amount:    100,
			card:      testCard(),
			opts:      Options{},
			wantField: "REFERENCE",
		},
		{
			name:      "zero amount",
			amount:    0,
			card:      testCard(),
			opts:      Options{OrderID: "1"},
			wantField: "MONTANT",
		},
		{
			name:      "negative amount",
			amount:    -5,
			card:      testCard(),
			opts:      Options{OrderID: "1"},
			wantField: "MONTANT",
		},
		{
			name:      "missing card number",
			amount:    100,
			card:      domain.CreditCard{ExpMonth: 12, ExpYear: 2027},
			opts:      Options{OrderID: "1"},
			wantField: "PORTEUR",
		},
		{
			name:      "bad expiry month",
			amount:    100,
			card:      domain.CreditCard{Number: "1111222233334444", ExpMonth: 13, ExpYear: 2027},
			opts:      Options{OrderID: "1"},
			wantField: "DATEVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.NewTransaction(TypePurchase, tt.amount, tt.card, tt.opts)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestDependentThreadsReference(t *testing.T) {
	b := newTestBuilder()

	fs, err := b.Dependent(TypeCapture, 100, testToken, Options{OrderID: "1"})
	require.NoError(t, err)

	assert.Equal(t, "00002", fs.Get(FieldType))
	assert.Equal(t, "0000036925", fs.Get(FieldCallNumber))
	assert.Equal(t, "0000051725", fs.Get(FieldTransNumber))
	assert.Equal(t, "0000000100", fs.Get(FieldAmount))
	assert.NotContains(t, fs, FieldCardNumber)
}

func TestDependentRejectsMissingReference(t *testing.T) {
	b := newTestBuilder()

	for _, token := range []domain.AuthorizationToken{"", "123", "too-short"} {
		_, err := b.Dependent(TypeCapture, 100, token, Options{OrderID: "1"})
		require.Error(t, err, "token %q", token)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "NUMAPPEL", verr.Field)
	}
}

func TestVoidRestatesAmountAndFillsCard(t *testing.T) {
	b := newTestBuilder()

	fs, err := b.Void(TypeVoid, testToken, Options{OrderID: "1", Amount: 100})
	require.NoError(t, err)

	assert.Equal(t, "00005", fs.Get(FieldType))
	assert.Equal(t, "0000000100", fs.Get(FieldAmount))
	assert.Equal(t, voidCardFiller, fs.Get(FieldCardNumber))
	assert.Equal(t, voidExpiryFiller, fs.Get(FieldExpiry))
}

func TestVoidKeepsResuppliedExpiry(t *testing.T) {
	b := newTestBuilder()

	fs, err := b.Void(TypeVoid, testToken, Options{OrderID: "1", Amount: 100, Expiry: "1227"})
	require.NoError(t, err)

	assert.Equal(t, "1227", fs.Get(FieldExpiry))
}

func TestVoidRequiresRestatedAmount(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Void(TypeVoid, testToken, Options{OrderID: "1"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "MONTANT", verr.Field)
}

func TestSubscriberOperationsSpeakDirectPlus(t *testing.T) {
	b := newTestBuilder()
	opts := Options{OrderID: "1", SubscriptionID: "sub_42"}

	fs, err := b.Subscriber(TypeSubscriberRegister, 100, testCard(), opts)
	require.NoError(t, err)

	assert.Equal(t, "00204", fs.Get(FieldVersion))
	assert.Equal(t, "00056", fs.Get(FieldType))
	assert.Equal(t, "sub_42", fs.Get(FieldSubscriberRef))
}

func TestSubscriberRequiresSubscriptionID(t *testing.T) {
	b := newTestBuilder()

	_, err := b.Subscriber(TypeSubscriberPurchase, 100, testCard(), Options{OrderID: "1"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "REFABONNE", verr.Field)
}

func TestDependentSubscriberOpsCarrySubscriberRef(t *testing.T) {
	b := newTestBuilder()

	fs, err := b.Dependent(TypeSubscriberCapture, 100, testToken, Options{OrderID: "1", SubscriptionID: "sub_42"})
	require.NoError(t, err)

	assert.Equal(t, "00204", fs.Get(FieldVersion))
	assert.Equal(t, "sub_42", fs.Get(FieldSubscriberRef))

	_, err = b.Dependent(TypeSubscriberCapture, 100, testToken, Options{OrderID: "1"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestSubscriberCancelCarriesOnlyCorrelationData(t *testing.T) {
	b := newTestBuilder()

	fs, err := b.SubscriberCancel(domain.SubscriptionHandle{SubscriptionID: "sub_42", OrderID: "1"})
	require.NoError(t, err)

	assert.Equal(t, "00058", fs.Get(FieldType))
	assert.Equal(t, "sub_42", fs.Get(FieldSubscriberRef))
	assert.Equal(t, "1", fs.Get(FieldReference))
	assert.NotContains(t, fs, FieldAmount)
	assert.NotContains(t, fs, FieldCardNumber)

	_, err = b.SubscriberCancel(domain.SubscriptionHandle{OrderID: "1"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestEachBuildPullsAFreshQuestionNumber(t *testing.T) {
	b := newTestBuilder()

	first, err := b.NewTransaction(TypeAuthorize, 100, testCard(), Options{OrderID: "1"})
	require.NoError(t, err)
	second, err := b.NewTransaction(TypeAuthorize, 100, testCard(), Options{OrderID: "1"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Get(FieldQuestionNumber), second.Get(FieldQuestionNumber))
}
