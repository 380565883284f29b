// Package sigstructure builds the COSE Sig_structure (RFC 8152 §4.4) that
// is the actual input to the ECDSA signature check for a COSE_Sign1
// object.
package sigstructure

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// context is the fixed context string for a single-signer COSE_Sign1
// Sig_structure.
const context = "Signature1"

// sigStructure mirrors the four positional fields of RFC 8152 §4.4 for
// COSE_Sign1: [ context, body_protected, external_aad, payload ].
type sigStructure struct {
	_             struct{} `cbor:",toarray"`
	Context       string
	BodyProtected []byte
	ExternalAAD   []byte
	Payload       []byte
}

var (
	canonicalEncMode     cbor.EncMode
	canonicalEncModeOnce sync.Once
)

// encMode returns a CBOR encoder configured for RFC 8949 §4.2 core
// deterministic encoding: definite lengths, shortest-form integers, map
// keys in their canonical order. This is the same construction
// (cbor.CanonicalEncOptions()) used to build the protected-header bytes
// in Jointeg-ubirch-cose-client-go's COSE signer, applied here to the
// to-be-signed Sig_structure instead.
func encMode() cbor.EncMode {
	canonicalEncModeOnce.Do(func() {
		m, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			panic(err)
		}
		canonicalEncMode = m
	})
	return canonicalEncMode
}

// Build constructs the deterministic CBOR encoding of the Sig_structure
// for a COSE_Sign1 with no external AAD. protected and payload must be the
// exact on-wire byte strings from the COSE_Sign1 array (spec invariant
// I2); this function does not re-derive or normalize them.
func Build(protected, payload []byte) ([]byte, error) {
	return encMode().Marshal(sigStructure{
		Context:       context,
		BodyProtected: protected,
		ExternalAAD:   []byte{},
		Payload:       payload,
	})
}
