package paybox

// Paybox Direct endpoints. The backup host answers the same protocol and
// is consulted only when the primary reports the unavailability status
// codes, never after a transport failure (the primary may already have
// processed the request).
const (
	ProductionURL = "https://ppps.paybox.com/PPPS.php"
	BackupURL     = "https://ppps1.paybox.com/PPPS.php"
	PreprodURL    = "https://preprod-ppps.paybox.com/PPPS.php"
)

// Protocol versions. Direct Plus (subscriber operations) speaks a
// separate version number on the same endpoint.
const (
	versionDirect     = "00104"
	versionDirectPlus = "00204"
)

// TransactionType is the five-digit operation code Paybox dispatches on.
type TransactionType string

const (
	TypeAuthorize TransactionType = "00001"
	TypeCapture   TransactionType = "00002"
	TypePurchase  TransactionType = "00003"
	TypeCredit    TransactionType = "00004"
	TypeVoid      TransactionType = "00005"

	// Direct Plus subscriber operations
	TypeSubscriberAuthorize TransactionType = "00051"
	TypeSubscriberCapture   TransactionType = "00052"
	TypeSubscriberPurchase  TransactionType = "00053"
	TypeSubscriberCredit    TransactionType = "00054"
	TypeSubscriberVoid      TransactionType = "00055"
	TypeSubscriberRegister  TransactionType = "00056"
	TypeSubscriberUpdate    TransactionType = "00057"
	TypeSubscriberDelete    TransactionType = "00058"
)

// recurring reports whether the type belongs to the Direct Plus
// subscriber range and therefore rides protocol version 00204.
func (t TransactionType) recurring() bool {
	return t >= TypeSubscriberAuthorize && t <= TypeSubscriberDelete
}

// Response status codes.
const (
	// codeApproved is the single approved status; everything else is a
	// decline of some flavor.
	codeApproved = "00000"
)

// unavailabilityCodes are the statuses Paybox emits when the platform
// itself (not the transaction) is the problem. Re-sending the identical
// request to the backup host is safe for these: the transaction was
// refused before processing.
var unavailabilityCodes = map[string]bool{
	"00001": true,
	"00097": true,
	"00098": true,
}

// Fixed response messages. Declines carry Paybox's own COMMENTAIRE text
// instead, passed through verbatim.
const (
	SuccessMessage = "The transaction was approved"
	FailureMessage = "The transaction failed"
)

// currencyCodes maps ISO 4217 alphabetic codes to the numeric codes
// DEVISE expects.
var currencyCodes = map[string]string{
	"AUD": "036",
	"CAD": "124",
	"CZK": "203",
	"DKK": "208",
	"HKD": "344",
	"ISK": "352",
	"JPY": "392",
	"NOK": "578",
	"SGD": "702",
	"SEK": "752",
	"CHF": "756",
	"GBP": "826",
	"USD": "840",
	"EUR": "978",
}

// CurrencyCode resolves an ISO 4217 alphabetic currency to its numeric
// wire value. The second result is false for unsupported currencies.
func CurrencyCode(alpha string) (string, bool) {
	code, ok := currencyCodes[alpha]
	return code, ok
}
