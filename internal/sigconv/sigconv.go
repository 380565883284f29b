// Package sigconv translates the raw IEEE-P1363 (r‖s) ECDSA signature
// format used on the wire by COSE/ES256 into the ASN.1 DER
// SEQUENCE(INTEGER, INTEGER) format Go's X.509/ECDSA verification expects.
//
// This is deliberately hand-written rather than built on a generic ASN.1
// library: the transformation is small, and the leading-zero/sign-bit
// cases are exactly where a misused generic encoder tends to go wrong.
// Grounded on the original Rust implementation's
// libdgc/src/cwt/mod.rs::signature_to_der, re-expressed without a
// generic ASN.1 dependency per spec.md §4.5/§9.
package sigconv

import "github.com/pkg/errors"

// rawSignatureLen is the wire length of an ES256 COSE signature: 32-byte
// r followed by 32-byte s.
const rawSignatureLen = 64

// ErrBadShape is the sentinel cause for a raw signature whose length is
// not rawSignatureLen.
var ErrBadShape = errors.New("sigconv: raw signature has unexpected length")

// ToDER converts a raw 64-octet r‖s ECDSA-P256 signature into an ASN.1 DER
// SEQUENCE of two INTEGERs.
func ToDER(raw []byte) ([]byte, error) {
	if len(raw) != rawSignatureLen {
		return nil, errors.Wrapf(ErrBadShape, "got %d bytes, want %d", len(raw), rawSignatureLen)
	}

	half := rawSignatureLen / 2
	r := encodeInteger(raw[:half])
	s := encodeInteger(raw[half:])

	content := make([]byte, 0, len(r)+len(s))
	content = append(content, r...)
	content = append(content, s...)

	return wrap(0x30, content), nil
}

// encodeInteger DER-encodes an unsigned big-endian magnitude as an
// INTEGER: strip leading zero bytes except one, then prepend a single
// 0x00 byte if the most significant bit of what remains is set (INTEGER
// is a signed type, so a high bit would otherwise flip the sign).
func encodeInteger(magnitude []byte) []byte {
	content := magnitude

	for len(content) > 1 && content[0] == 0x00 {
		content = content[1:]
	}

	if len(content) == 0 {
		content = []byte{0x00}
	}

	if content[0]&0x80 != 0 {
		padded := make([]byte, 0, len(content)+1)
		padded = append(padded, 0x00)
		padded = append(padded, content...)
		content = padded
	}

	return wrap(0x02, content)
}

// wrap prepends a DER tag/length header (short-form length only, which is
// always sufficient here: r and s are at most 33 bytes and the full
// SEQUENCE is at most 2*35 bytes, all under the 128-byte short-form
// boundary).
func wrap(tag byte, content []byte) []byte {
	out := make([]byte, 0, 2+len(content))
	out = append(out, tag, byte(len(content)))
	out = append(out, content...)
	return out
}
