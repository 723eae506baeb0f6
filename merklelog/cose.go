package merklelog

import (
	"crypto"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/ldclabs/cose/go/cwt"
	"github.com/veraison/go-cose"
)

const (
	HeaderLabelCWTClaimsDraft int64 = 13
	HeaderLabelCWTClaims      int64 = 15
)

// CWTClaims are the claims carried in the protected header of a checkpoint
type CWTClaims struct {
	Issuer  string
	Subject string
}

// Sign1Message extends cose.Sign1Message with the cbor mode used to decode its
// payload.
type Sign1Message struct {
	*cose.Sign1Message
	decMode cbor.DecMode
}

func newSign1Message(message *cose.Sign1Message) (*Sign1Message, error) {
	var err error
	msg := Sign1Message{Sign1Message: message}
	msg.decMode, err = newHeaderDecOptions().DecMode()
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// NewSign1MessageFromCBOR decodes a cbor encoded cose_Sign1 message
func NewSign1MessageFromCBOR(data []byte) (*Sign1Message, error) {
	var message cose.Sign1Message
	if err := message.UnmarshalCBOR(data); err != nil {
		return nil, err
	}
	return newSign1Message(&message)
}

func (m *Sign1Message) MarshalCBOR() ([]byte, error) {
	return m.Sign1Message.MarshalCBOR()
}

// UnmarshalPayload decodes the payload into v
func (m *Sign1Message) UnmarshalPayload(v any) error {
	return m.decMode.Unmarshal(m.Payload, v)
}

func (m *Sign1Message) valueFromProtectedHeader(label int64) (any, error) {
	value, ok := m.Headers.Protected[label]
	if !ok {
		return nil, &ErrNoProtectedHeaderValue{Label: label}
	}
	return value, nil
}

// KidFromProtectedHeader gets the kid from the protected header
func (m *Sign1Message) KidFromProtectedHeader() (string, error) {
	kid, err := m.valueFromProtectedHeader(cose.HeaderLabelKeyID)
	if err != nil {
		return "", err
	}
	kidBytes, ok := kid.([]byte)
	if !ok {
		return "", &ErrUnexpectedProtectedHeaderType{
			Label: cose.HeaderLabelKeyID, ExpectedType: "[]byte", ActualType: reflect.TypeOf(kid).String()}
	}
	return string(kidBytes), nil
}

// CWTClaimsFromProtectedHeader gets the issuer and subject claims, accepting
// the draft label if the registered one is absent.
func (m *Sign1Message) CWTClaimsFromProtectedHeader() (*CWTClaims, error) {
	raw, err := m.valueFromProtectedHeader(HeaderLabelCWTClaims)
	if err != nil {
		raw, err = m.valueFromProtectedHeader(HeaderLabelCWTClaimsDraft)
		if err != nil {
			return nil, err
		}
	}

	claims, ok := raw.(map[any]any)
	if !ok {
		return nil, &ErrUnexpectedProtectedHeaderType{
			Label: HeaderLabelCWTClaims, ExpectedType: "map[any]any", ActualType: reflect.TypeOf(raw).String()}
	}

	issuer, ok := claimValue(claims, int64(cwt.KeyIss))
	if !ok {
		return nil, ErrCWTClaimsNoIssuer
	}
	issuerStr, ok := issuer.(string)
	if !ok {
		return nil, ErrCWTClaimsIssuerNotString
	}

	subject, ok := claimValue(claims, int64(cwt.KeySub))
	if !ok {
		return nil, ErrCWTClaimsNoSubject
	}
	subjectStr, ok := subject.(string)
	if !ok {
		return nil, ErrCWTClaimsSubjectNotString
	}

	return &CWTClaims{Issuer: issuerStr, Subject: subjectStr}, nil
}

// claimValue looks up an integer claim key. Keys constructed in memory are
// int64, keys decoded without signed conversion are uint64.
func claimValue(claims map[any]any, key int64) (any, bool) {
	if v, ok := claims[key]; ok {
		return v, true
	}
	if key >= 0 {
		v, ok := claims[uint64(key)]
		return v, ok
	}
	return nil, false
}

func newCWTClaims(issuer, subject string) map[any]any {
	return map[any]any{
		int64(cwt.KeyIss): issuer,
		int64(cwt.KeySub): subject,
	}
}

// VerifyWithPublicKey verifies the message with the algorithm from its
// protected header
func (m *Sign1Message) VerifyWithPublicKey(publicKey crypto.PublicKey, external []byte) error {
	algorithm, err := m.Headers.Protected.Algorithm()
	if err != nil {
		return err
	}
	verifier, err := cose.NewVerifier(algorithm, publicKey)
	if err != nil {
		return err
	}
	return m.Verify(external, verifier)
}
