package fixtures

import (
	"time"

	"github.com/google/uuid"
	"github.com/kevin07696/paybox-client/domain"
	"github.com/kevin07696/paybox-client/paybox"
)

// Paybox preprod test PANs. The second differs only in its last digit
// and is always declined as an invalid card number.
const (
	ApprovedPAN = "1111222233334444"
	DeclinedPAN = "1111222233334445"
)

// ApprovedCard returns a card the preprod platform approves.
func ApprovedCard() domain.CreditCard {
	return testCard(ApprovedPAN)
}

// DeclinedCard returns a card the preprod platform declines with the
// invalid-card-number message.
func DeclinedCard() domain.CreditCard {
	return testCard(DeclinedPAN)
}

func testCard(number string) domain.CreditCard {
	return domain.CreditCard{
		Number:     number,
		ExpMonth:   12,
		ExpYear:    time.Now().Year() + 1,
		CVV:        "123",
		HolderName: "Longbob Longsen",
	}
}

// SubscriberCard wraps the token Paybox returned at registration into
// the instrument subscriber authorize/purchase calls expect.
func SubscriberCard(token string) domain.CreditCard {
	card := testCard(token)
	card.CVV = ""
	return card
}

// Options returns per-call options with a fresh order reference.
func Options() paybox.Options {
	return paybox.Options{
		OrderID:     uuid.New().String(),
		Description: "Store Purchase",
		BillingAddress: &domain.Address{
			Line1:   "456 My Street",
			Line2:   "Apt 1",
			City:    "Ottawa",
			State:   "ON",
			Zip:     "K1C2N6",
			Country: "CA",
		},
	}
}

// RecurringOptions returns options carrying a fresh subscription id.
func RecurringOptions() paybox.Options {
	opts := Options()
	opts.BillingAddress = nil
	opts.SubscriptionID = "sub_" + uuid.New().String()[:8]
	return opts
}
