package paybox

import (
	"github.com/kevin07696/paybox-client/domain"
)

// interpret decodes a delivered Paybox body into a Response. Only an
// undecodable body is an error; a decline is a normal Response with
// Success=false and the processor's own comment preserved verbatim.
func interpret(body []byte) (*domain.Response, error) {
	fs, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}

	code := fs.Get(FieldResponseCode)
	if code == "" {
		return nil, &domain.ProtocolError{Reason: "response is missing CODEREPONSE", Raw: body}
	}

	success := code == codeApproved

	resp := &domain.Response{
		Success:     success,
		Code:        code,
		Unavailable: unavailabilityCodes[code],
		Fields:      fs.Strings(),
	}

	if success {
		resp.Message = SuccessMessage
		resp.Authorization = composeAuthorization(fs)
	} else if comment := fs.Get(FieldComment); comment != "" {
		resp.Message = comment
	} else {
		resp.Message = FailureMessage
	}

	return resp, nil
}

// composeAuthorization joins the call and transaction numbers into the
// opaque token dependent operations echo back. Both halves are padded to
// reference width so the token splits unambiguously later.
func composeAuthorization(fs FieldSet) domain.AuthorizationToken {
	call := fs.Get(FieldCallNumber)
	trans := fs.Get(FieldTransNumber)
	if call == "" || trans == "" {
		return ""
	}
	return domain.AuthorizationToken(padReference(call) + padReference(trans))
}

func padReference(ref string) string {
	for len(ref) < 10 {
		ref = "0" + ref
	}
	return ref
}

// SubscriberToken extracts the subscriber card token Paybox returns on
// registration (in PORTEUR). Subsequent authorize/purchase calls against
// the subscription send it back in place of the PAN.
func SubscriberToken(resp *domain.Response) string {
	if resp == nil {
		return ""
	}
	return resp.Fields[string(FieldCardNumber)]
}
