// Package keystore implements the trust-anchor model backing DGC
// signature verification: an immutable kid → DER-encoded X.509
// end-entity certificate map, loaded once from a JSON trust list and
// shared read-only across concurrent verifications.
package keystore

import (
	"crypto/x509"
	"encoding/base64"

	"github.com/pkg/errors"
)

// Kind classifies a keystore operation failure.
type Kind int

const (
	// FileError means the keystore file could not be opened/read.
	FileError Kind = iota
	// DownloadError means the keystore URL could not be fetched.
	DownloadError
	// ParsingError means the keystore JSON document was malformed.
	ParsingError
	// KeyNotFound means the requested kid is absent from the store.
	KeyNotFound
	// CertMalformed means the stored DER bytes do not parse as X.509.
	CertMalformed
)

func (k Kind) String() string {
	switch k {
	case FileError:
		return "FileError"
	case DownloadError:
		return "DownloadError"
	case ParsingError:
		return "ParsingError"
	case KeyNotFound:
		return "KeyNotFound"
	case CertMalformed:
		return "CertMalformed"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by keystore operations.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: errors.WithStack(cause)}
}

// sentinels for errors.Is(err, keystore.ErrXxx) comparisons.
var (
	ErrFile          = &Error{Kind: FileError}
	ErrDownload      = &Error{Kind: DownloadError}
	ErrParsing       = &Error{Kind: ParsingError}
	ErrKeyNotFound   = &Error{Kind: KeyNotFound}
	ErrCertMalformed = &Error{Kind: CertMalformed}
)

// rawDocument is the on-wire JSON shape: kid (Base64) → single-element
// array of Base64-encoded DER certificate bodies.
type rawDocument map[string][1]string

// KeyStore is an immutable kid → DER certificate bytes map. Safe for
// concurrent read access once constructed; there is no mutation API.
type KeyStore struct {
	certs map[string][]byte
}

// New builds a KeyStore from already-decoded kid → DER bytes pairs.
// Exposed primarily for tests that want to construct a store without
// going through JSON.
func New(certs map[string][]byte) *KeyStore {
	copied := make(map[string][]byte, len(certs))
	for kid, der := range certs {
		copied[kid] = der
	}
	return &KeyStore{certs: copied}
}

func fromRaw(raw rawDocument) *KeyStore {
	certs := make(map[string][]byte, len(raw))

	for kid, content := range raw {
		der, err := base64.StdEncoding.DecodeString(content[0])
		if err != nil {
			// Bad upstream entries must not break the whole trust list.
			continue
		}
		certs[kid] = der
	}

	return &KeyStore{certs: certs}
}

// PubkeyForSignature returns the parsed end-entity certificate for kid,
// suitable for ECDSA signature verification.
func (k *KeyStore) PubkeyForSignature(kid string) (*x509.Certificate, error) {
	return k.parse(kid)
}

// PubkeyAsCert returns the full parsed X.509 view (subject, issuer,
// validity) for kid, for display/UI purposes.
//
// spec.md §9 leaves open whether a key may exist in the signature-lookup
// path but not the metadata path; this implementation treats them as the
// same underlying stored bytes, parsed identically, so the two accessors
// can never disagree.
func (k *KeyStore) PubkeyAsCert(kid string) (*x509.Certificate, error) {
	return k.parse(kid)
}

func (k *KeyStore) parse(kid string) (*x509.Certificate, error) {
	der, ok := k.certs[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, wrap(CertMalformed, err)
	}

	return cert, nil
}

// Entry pairs a kid with its parsed certificate, yielded by Pubkeys.
type Entry struct {
	Kid  string
	Cert *x509.Certificate
}

// Pubkeys returns every parseable entry in the store, skipping entries
// whose DER bytes fail to parse as X.509 (spec.md §8 scenario 6).
func (k *KeyStore) Pubkeys() []Entry {
	entries := make([]Entry, 0, len(k.certs))
	for kid, der := range k.certs {
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Kid: kid, Cert: cert})
	}
	return entries
}

// Len returns the number of Base64-decodable entries in the store
// (parseable or not).
func (k *KeyStore) Len() int {
	return len(k.certs)
}
