// Package dgc decodes and verifies EU Digital Green Certificates (DGC,
// "HC1") — signed health credentials encoded as 2D barcodes. It
// implements the text-envelope → COSE_Sign1 → CWT/HCERT pipeline and the
// ECDSA-P256/SHA-256 signature check against a keystore of trust-anchor
// certificates.
//
// A certificate moves through three states: Raw (owns the inflated COSE
// bytes), Decoded (a parsed view holding copies of the signature-relevant
// byte strings), and Verified
// (additionally holds the parsed HCERT claims). Each transition consumes
// the previous value; callers cannot construct Decoded or Verified
// directly, only via Decode and VerifySignature.
package dgc

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	stderrors "errors"
	"time"

	"github.com/Nic0w/dgc-decoder/internal/cosewire"
	"github.com/Nic0w/dgc-decoder/internal/envelope"
	"github.com/Nic0w/dgc-decoder/internal/hcert"
	"github.com/Nic0w/dgc-decoder/internal/sigconv"
	"github.com/Nic0w/dgc-decoder/internal/sigstructure"
	"github.com/Nic0w/dgc-decoder/keystore"
)

// algES256 is the COSE algorithm identifier for ECDSA-P256/SHA-256, the
// only algorithm this profile accepts.
const algES256 = -7

// Decoder decodes EU Digital Green Certificate QR code payloads. The zero
// value is ready to use.
type Decoder struct{}

// DefaultDecoder is a ready-to-use Decoder.
var DefaultDecoder = &Decoder{}

// Decode decodes the specified HC1 text payload using DefaultDecoder.
func Decode(text string) (*Raw, error) {
	return DefaultDecoder.Decode(text)
}

// Decode splits the HC1 prefix, Base45-decodes and zlib-inflates the
// body, and returns a Raw certificate owning the resulting buffer.
func (d *Decoder) Decode(text string) (*Raw, error) {
	buf, err := envelope.Decode(text)
	if err != nil {
		return nil, mapEnvelopeError(err)
	}
	return &Raw{buf: buf}, nil
}

// Raw is an inflated COSE_Sign1 buffer that has not yet been parsed.
// Raw owns buf; nothing else may mutate it (spec invariant I1).
type Raw struct {
	buf []byte
}

// Len returns the size in bytes of the inflated COSE buffer.
func (r *Raw) Len() int {
	return len(r.buf)
}

// Decode parses the inflated buffer as a COSE_Sign1 object (RFC 8152
// §4.2), accepting both the tagged and untagged forms.
func (r *Raw) Decode() (*Decoded, error) {
	sign1, err := cosewire.Parse(r.buf)
	if err != nil {
		return nil, wrap(CoseStructure, err)
	}
	return &Decoded{sign1: sign1}, nil
}

// Decoded is a parsed COSE_Sign1 view whose signature has not yet been
// checked. Protected, Payload and Signature are copies of the exact
// on-wire byte strings (spec invariant I2).
type Decoded struct {
	sign1 *cosewire.Sign1
}

// Protected returns the exact bytes of the protected header bstr.
func (d *Decoded) Protected() []byte {
	return d.sign1.Protected
}

// Payload returns the exact bytes of the CWT claims payload bstr.
func (d *Decoded) Payload() []byte {
	return d.sign1.Payload
}

// Signature returns the exact bytes of the raw (r‖s) signature.
func (d *Decoded) Signature() []byte {
	return d.sign1.Signature
}

// DecodePayload parses the CWT/HCERT claims without checking the
// signature. Used only by explicit "decode without verify" flows; policy
// decisions about trusting unverified content belong to the caller.
func (d *Decoded) DecodePayload() (hcert.Claims, error) {
	claims, err := hcert.Parse(d.sign1.Payload)
	if err != nil {
		return hcert.Claims{}, wrap(PayloadMalformed, err)
	}
	return claims, nil
}

// VerifySignature checks the COSE_Sign1 signature against keystore and,
// on success, parses the CWT/HCERT claims. Both must succeed for a
// Verified value to be returned (spec.md §4.8): a valid signature over a
// payload that fails HCERT parsing is reported as PayloadMalformed, not
// silently accepted.
func (d *Decoded) VerifySignature(ks *keystore.KeyStore) (*Verified, error) {
	headers, err := cosewire.ParseHeaders(d.sign1.Protected)
	if err != nil {
		return nil, wrap(HeaderMalformed, err)
	}

	if len(headers.Kid) == 0 {
		return nil, newError(MissingKid, "protected header has no kid")
	}
	if headers.Alg == nil || *headers.Alg != algES256 {
		return nil, newError(UnsupportedAlgorithm, "alg must be -7 (ES256)")
	}

	kid := base64.StdEncoding.EncodeToString(headers.Kid)

	cert, err := ks.PubkeyForSignature(kid)
	if err != nil {
		return nil, mapKeystoreError(err)
	}

	pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, newError(CertMalformed, "certificate public key is not ECDSA")
	}

	toBeSigned, err := sigstructure.Build(d.sign1.Protected, d.sign1.Payload)
	if err != nil {
		return nil, wrap(SignatureInvalid, err)
	}

	der, err := sigconv.ToDER(d.sign1.Signature)
	if err != nil {
		return nil, wrap(BadSignatureShape, err)
	}

	digest := sha256.Sum256(toBeSigned)
	if !ecdsa.VerifyASN1(pub, digest[:], der) {
		return nil, newError(SignatureInvalid, "ECDSA verification failed")
	}

	claims, err := hcert.Parse(d.sign1.Payload)
	if err != nil {
		return nil, wrap(PayloadMalformed, err)
	}

	return &Verified{kid: kid, cert: cert, claims: claims}, nil
}

// Verified is a certificate whose signature has been checked against a
// known trust anchor and whose HCERT claims have been parsed.
type Verified struct {
	kid    string
	cert   *x509.Certificate
	claims hcert.Claims
}

// Kid returns the Base64 key identifier the signature was verified
// against.
func (v *Verified) Kid() string {
	return v.kid
}

// SignedBy returns the end-entity certificate whose signature verified.
func (v *Verified) SignedBy() *x509.Certificate {
	return v.cert
}

// Issuer returns the CWT iss claim.
func (v *Verified) Issuer() string {
	return v.claims.Iss
}

// IssuedAt returns the CWT iat claim as a time.
func (v *Verified) IssuedAt() time.Time {
	return time.Unix(v.claims.Iat, 0).UTC()
}

// ExpiringAt returns the CWT exp claim as a time. Per spec invariant I4,
// this is not checked against IssuedAt or the current time by the
// decoder; callers layer expiry policy themselves.
func (v *Verified) ExpiringAt() time.Time {
	return time.Unix(v.claims.Exp, 0).UTC()
}

// Claims returns the full parsed CWT/HCERT payload.
func (v *Verified) Claims() hcert.Claims {
	return v.claims
}

// AmbiguousCertificateType reports whether the HCERT payload carried
// zero or more than one of the vaccine/test/recovery groups.
func (v *Verified) AmbiguousCertificateType() bool {
	return v.claims.HCert.Ambiguous()
}

// Person returns the certificate subject's name.
func (v *Verified) Person() hcert.Person {
	return v.claims.HCert.Person
}

// VaccineData returns the vaccination record, or nil if none is present.
func (v *Verified) VaccineData() *hcert.Vaccine {
	if len(v.claims.HCert.Vaccine) == 0 {
		return nil
	}
	return &v.claims.HCert.Vaccine[0]
}

// TestData returns the test record, or nil if none is present.
func (v *Verified) TestData() *hcert.Test {
	if len(v.claims.HCert.Test) == 0 {
		return nil
	}
	return &v.claims.HCert.Test[0]
}

// RecoveryData returns the recovery record, or nil if none is present.
func (v *Verified) RecoveryData() *hcert.Recovery {
	if len(v.claims.HCert.Recovery) == 0 {
		return nil
	}
	return &v.claims.HCert.Recovery[0]
}

func mapEnvelopeError(err error) *Error {
	switch {
	case stderrors.Is(err, envelope.ErrUnknownVersion):
		return wrap(UnknownVersion, err)
	case stderrors.Is(err, envelope.ErrBase45):
		return wrap(Base45Decode, err)
	default:
		return wrap(Inflate, err)
	}
}

func mapKeystoreError(err error) *Error {
	switch {
	case stderrors.Is(err, keystore.ErrKeyNotFound):
		return wrap(KeyNotFound, err)
	default:
		return wrap(CertMalformed, err)
	}
}
