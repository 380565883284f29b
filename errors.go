package dgc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a decode or verification failure. Kinds are flat: none
// wraps another, each carries enough context on its own for a human
// message.
type Kind int

const (
	// UnknownVersion means the text did not start with the HC1 prefix.
	UnknownVersion Kind = iota
	// Base45Decode means the envelope body was not valid Base45.
	Base45Decode
	// Inflate means the zlib stream could not be decompressed, or inflated
	// to more than the envelope size cap.
	Inflate
	// CoseStructure means the inflated bytes were not a 4-element COSE_Sign1.
	CoseStructure
	// HeaderMalformed means the protected header CBOR could not be parsed.
	HeaderMalformed
	// MissingKid means the protected header had no kid field.
	MissingKid
	// UnsupportedAlgorithm means alg was absent or not -7 (ES256).
	UnsupportedAlgorithm
	// KeyNotFound means the kid was not present in the keystore.
	KeyNotFound
	// CertMalformed means the keystore entry's DER bytes did not parse as
	// an X.509 end-entity certificate.
	CertMalformed
	// BadSignatureShape means the raw signature was not 64 octets.
	BadSignatureShape
	// SignatureInvalid means the ECDSA check failed.
	SignatureInvalid
	// PayloadMalformed means the CWT claims CBOR was invalid or lacked a
	// mandatory claim. VerifySignature reports it only after a successful
	// signature check; DecodePayload reports it without any check.
	PayloadMalformed
)

func (k Kind) String() string {
	switch k {
	case UnknownVersion:
		return "UnknownVersion"
	case Base45Decode:
		return "Base45Decode"
	case Inflate:
		return "Inflate"
	case CoseStructure:
		return "CoseStructure"
	case HeaderMalformed:
		return "HeaderMalformed"
	case MissingKid:
		return "MissingKid"
	case UnsupportedAlgorithm:
		return "UnsupportedAlgorithm"
	case KeyNotFound:
		return "KeyNotFound"
	case CertMalformed:
		return "CertMalformed"
	case BadSignatureShape:
		return "BadSignatureShape"
	case SignatureInvalid:
		return "SignatureInvalid"
	case PayloadMalformed:
		return "PayloadMalformed"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every decode/verify step. It carries
// a flat Kind plus the underlying cause, so callers can classify with
// errors.Is(err, dgc.ErrXxx) while still being able to print %+v for a full
// chain with stack trace (via github.com/pkg/errors).
type Error struct {
	Kind  Kind
	cause error
}

func wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: errors.WithStack(cause)}
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: errors.New(msg)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Format implements fmt.Formatter: %+v prints the kind followed by the
// cause with its stack trace; every other verb formats Error().
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.cause != nil {
		fmt.Fprintf(s, "%s: %+v", e.Kind, e.cause)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.Error())
}

// Is lets errors.Is(err, SomeKindSentinel) work by comparing Kind values.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// sentinel error values for errors.Is(err, dgc.ErrXxx) comparisons, each
// carrying only its Kind (no cause) so identity comparison is by Kind.
var (
	ErrUnknownVersion      = &Error{Kind: UnknownVersion}
	ErrBase45Decode        = &Error{Kind: Base45Decode}
	ErrInflate             = &Error{Kind: Inflate}
	ErrCoseStructure       = &Error{Kind: CoseStructure}
	ErrHeaderMalformed     = &Error{Kind: HeaderMalformed}
	ErrMissingKid          = &Error{Kind: MissingKid}
	ErrUnsupportedAlgoritm = &Error{Kind: UnsupportedAlgorithm}
	ErrKeyNotFound         = &Error{Kind: KeyNotFound}
	ErrCertMalformed       = &Error{Kind: CertMalformed}
	ErrBadSignatureShape   = &Error{Kind: BadSignatureShape}
	ErrSignatureInvalid    = &Error{Kind: SignatureInvalid}
	ErrPayloadMalformed    = &Error{Kind: PayloadMalformed}
)
