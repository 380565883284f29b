// Package cosewire implements the structural parser for COSE_Sign1
// objects (RFC 8152 §4.2) and their protected/unprotected headers
// (RFC 8152 §3.1), tailored to the DGC profile.
//
// The parser never re-encodes the protected header or payload byte
// strings: their content is copied once out of the inflated buffer and
// held as-is, because the signature binds their exact on-wire
// serialization (spec invariant I2). This is deliberate: a generic
// COSE library that decodes headers into a Go map and re-serializes them
// before verification would not reproduce the original bytes whenever the
// issuer's encoding isn't canonical.
package cosewire

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// sign1Tag is the single-byte encoding of CBOR tag 18 (#6.18), used to
// mark a tagged COSE_Sign1 per RFC 8152 §2.
const sign1Tag = 0xd2

// ErrStructure is the sentinel cause for any structural violation of the
// 4-element COSE_Sign1 array.
var ErrStructure = errors.New("cosewire: not a valid COSE_Sign1 structure")

// wireSign1 mirrors the on-wire array layout. Protected/Payload/Signature
// are plain []byte fields: fxamacker/cbor copies only the content of each
// byte string into a freshly allocated slice, never round-tripping their
// encoding. Unprotected is decoded generically since verification never
// inspects it: kid and alg are read from the protected header only.
type wireSign1 struct {
	_           struct{} `cbor:",toarray"`
	Protected   []byte
	Unprotected map[interface{}]interface{}
	Payload     []byte
	Signature   []byte
}

// Sign1 is the borrow-friendly view over a decoded COSE_Sign1 object.
// Protected, Payload and Signature are exact copies of the on-wire byte
// strings (spec.md invariant I2); Unprotected is advisory only.
type Sign1 struct {
	Protected   []byte
	Unprotected map[interface{}]interface{}
	Payload     []byte
	Signature   []byte
}

// Parse decodes data as a COSE_Sign1 object, accepting both the tagged
// (CBOR tag 18) and untagged forms.
func Parse(data []byte) (*Sign1, error) {
	if len(data) > 0 && data[0] == sign1Tag {
		data = data[1:]
	}

	var v wireSign1
	if err := cbor.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(ErrStructure, err.Error())
	}

	return &Sign1{
		Protected:   v.Protected,
		Unprotected: v.Unprotected,
		Payload:     v.Payload,
		Signature:   v.Signature,
	}, nil
}
