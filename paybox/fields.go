package paybox

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kevin07696/paybox-client/domain"
)

// Field is a Paybox wire key. Keeping the set closed catches a mistyped
// key at compile time instead of as a processor-side "mandatory values
// missing" decline.
type Field string

const (
	FieldVersion        Field = "VERSION"
	FieldType           Field = "TYPE"
	FieldSite           Field = "SITE"
	FieldRank           Field = "RANG"
	FieldKey            Field = "CLE"
	FieldQuestionNumber Field = "NUMQUESTION"
	FieldAmount         Field = "MONTANT"
	FieldCurrency       Field = "DEVISE"
	FieldReference      Field = "REFERENCE"
	FieldSubscriberRef  Field = "REFABONNE"
	FieldCardNumber     Field = "PORTEUR"
	FieldExpiry         Field = "DATEVAL"
	FieldCVV            Field = "CVV"
	FieldActivity       Field = "ACTIVITE"
	FieldRequestDate    Field = "DATEQ"
	FieldCallNumber     Field = "NUMAPPEL"
	FieldTransNumber    Field = "NUMTRANS"
	FieldCountry        Field = "PAYS"

	// Response-only fields
	FieldResponseCode  Field = "CODEREPONSE"
	FieldComment       Field = "COMMENTAIRE"
	FieldAuthorization Field = "AUTORISATION"
	FieldCardType      Field = "TYPECARTE"
)

// FieldSet is one flat Paybox message, request or response. Absent
// optional fields are simply not present; the codec never emits empty
// values.
type FieldSet map[Field]string

// Set stores a value, dropping empty strings so optional fields are
// omitted rather than sent blank.
func (fs FieldSet) Set(key Field, value string) {
	if value == "" {
		return
	}
	fs[key] = value
}

// Get returns the value for key, or "" when absent.
func (fs FieldSet) Get(key Field) string {
	return fs[key]
}

// Encode serializes the set as the KEY=VALUE&... body Paybox expects.
// Keys are emitted in sorted order; Paybox does not care about ordering
// but deterministic output keeps request logs diffable.
func (fs FieldSet) Encode() []byte {
	values := url.Values{}
	for key, value := range fs {
		values.Set(string(key), value)
	}
	return []byte(values.Encode())
}

// Strings converts the set to a plain map for Response.Fields.
func (fs FieldSet) Strings() map[string]string {
	out := make(map[string]string, len(fs))
	for key, value := range fs {
		out[string(key)] = value
	}
	return out
}

// DecodeFields parses a Paybox key-value body. Unknown keys are kept
// as-is for forward compatibility; keys are normalized to upper case
// because Paybox is not consistent about response casing. Empty values
// are dropped, making DecodeFields the exact inverse of Encode.
func DecodeFields(body []byte) (FieldSet, error) {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return nil, &domain.ProtocolError{Reason: "empty response body", Raw: body}
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, &domain.ProtocolError{Reason: fmt.Sprintf("malformed key-value body: %v", err), Raw: body}
	}
	fs := make(FieldSet, len(values))
	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		fs[Field(strings.ToUpper(key))] = vals[0]
	}
	if len(fs) == 0 {
		return nil, &domain.ProtocolError{Reason: "response contains no fields", Raw: body}
	}
	return fs, nil
}

// padNumber renders a non-negative integer zero-padded to the fixed
// width the protocol mandates for numeric fields.
func padNumber(n int64, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// amountWidth is the fixed width of MONTANT on the wire.
const amountWidth = 10

// encodeAmount renders a minor-unit amount as the ten-digit zero-padded
// MONTANT value.
func encodeAmount(amount domain.Money) string {
	return padNumber(int64(amount), amountWidth)
}
