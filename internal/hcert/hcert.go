// Package hcert decodes the CWT claims payload carried inside a
// COSE_Sign1 object, and the HCERT health-subject data nested under claim
// key -260. Field names and CBOR keys follow the EU HCERT JSON schema,
// grounded on Nico0302-coronaqr's CovidCert/VaccineRecord/TestRecord/
// RecoveryRecord types, renamed to match this profile's vocabulary and
// rounded out with the Test/Recovery fields the teacher left as stubs.
package hcert

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// ErrMissingClaim is the sentinel cause for a CWT payload missing iss,
// iat, exp, or the hcert claim.
var ErrMissingClaim = errors.New("hcert: missing mandatory CWT claim")

// ErrMalformed is the sentinel cause for a payload that is not valid
// CBOR, or whose hcert map does not contain a key-1 CertificateData.
var ErrMalformed = errors.New("hcert: malformed CWT/HCERT payload")

// Person is the certificate subject's name, as both presented and
// standardized (transliterated) forms.
type Person struct {
	// Surname is keyed "fn" on the wire (CWT/CBOR), not to be confused
	// with a filename; it is the holder's family name.
	Surname               string `cbor:"fn" json:"surname"`
	StandardizedSurname   string `cbor:"fnt" json:"standardizedSurname"`
	GivenName             string `cbor:"gn,omitempty" json:"givenName,omitempty"`
	StandardizedGivenName string `cbor:"gnt,omitempty" json:"standardizedGivenName,omitempty"`
}

// Vaccine is one vaccination record (EU HCERT JSON schema "v" group).
type Vaccine struct {
	Target  string `cbor:"tg" json:"target"`
	Vaccine string `cbor:"vp" json:"vaccine"`
	Product string `cbor:"mp" json:"product"`

	Manufacturer string `cbor:"ma" json:"manufacturer"`

	// Doses and DoseSeries are declared as integers by the schema, but
	// float64 here: some issuers (e.g. IE) have been observed to encode
	// them as CBOR floats on the wire.
	Doses      float64 `cbor:"dn" json:"doses"`
	DoseSeries float64 `cbor:"sd" json:"doseSeries"`

	Date          string `cbor:"dt" json:"date"`
	Country       string `cbor:"co" json:"country"`
	Issuer        string `cbor:"is" json:"issuer"`
	CertificateID string `cbor:"ci" json:"certificateID"`
}

// Test is one test record (EU HCERT JSON schema "t" group).
type Test struct {
	Target   string `cbor:"tg" json:"target"`
	TestType string `cbor:"tt" json:"testType"`

	// Name is the NAA test name; present for NAA tests, absent for RAT
	// tests (which carry Manufacturer instead).
	Name string `cbor:"nm,omitempty" json:"name,omitempty"`
	// Manufacturer is the RAT test device identifier.
	Manufacturer string `cbor:"ma,omitempty" json:"manufacturer,omitempty"`

	SampleDatetime string `cbor:"sc" json:"sampleDatetime"`
	TestResult     string `cbor:"tr" json:"testResult"`
	TestingCentre  string `cbor:"tc" json:"testingCentre"`
	Country        string `cbor:"co" json:"country"`
	Issuer         string `cbor:"is" json:"issuer"`
	CertificateID  string `cbor:"ci" json:"certificateID"`
}

// Recovery is one recovery record (EU HCERT JSON schema "r" group).
type Recovery struct {
	Target string `cbor:"tg" json:"target"`

	FirstPositiveTestDate string `cbor:"fr" json:"firstPositiveTestDate"`
	ValidFromDate         string `cbor:"df" json:"validFromDate"`
	ValidUntilDate        string `cbor:"du" json:"validUntilDate"`

	Country       string `cbor:"co" json:"country"`
	Issuer        string `cbor:"is" json:"issuer"`
	CertificateID string `cbor:"ci" json:"certificateID"`
}

// CertificateData is the health-subject data carried under HCERT key 1.
// Exactly one of Vaccine/Test/Recovery is expected to be populated;
// Ambiguous reports when that is not the case (spec.md §4.7: the parser
// accepts zero or multiple groups, flagging it for the caller rather than
// failing).
type CertificateData struct {
	DateOfBirth string `cbor:"dob" json:"dateOfBirth"`
	Version     string `cbor:"ver" json:"version"`
	Person      Person `cbor:"nam" json:"name"`

	Vaccine  []Vaccine  `cbor:"v,omitempty" json:"vaccine,omitempty"`
	Test     []Test     `cbor:"t,omitempty" json:"test,omitempty"`
	Recovery []Recovery `cbor:"r,omitempty" json:"recovery,omitempty"`
}

// Ambiguous reports whether zero or more than one of the vaccine/test/
// recovery groups is present.
func (c CertificateData) Ambiguous() bool {
	present := 0
	if len(c.Vaccine) > 0 {
		present++
	}
	if len(c.Test) > 0 {
		present++
	}
	if len(c.Recovery) > 0 {
		present++
	}
	return present != 1
}

// hcertGroup is the map carried under CWT claim -260, keyed by schema
// version (this profile only recognizes key 1).
type hcertGroup struct {
	Data *CertificateData `cbor:"1,keyasint,omitempty"`
}

// Claims is the parsed CWT claims payload (RFC 8392) of a DGC.
type Claims struct {
	// Iss is the certificate issuer, typically an ISO 3166-1 alpha-2
	// country code.
	Iss string
	// Iat and Exp are Unix timestamps (seconds). Per spec invariant I4,
	// Exp < Iat is accepted here; expiry is a policy decision exposed to
	// callers, not a parse-time gate.
	Iat int64
	Exp int64

	HCert CertificateData
}

// rawClaims uses pointer/optional fields purely to detect presence,
// distinguishing "claim absent" from "claim present with zero value".
type rawClaims struct {
	Iss   *string     `cbor:"1,keyasint,omitempty"`
	Exp   *int64      `cbor:"4,keyasint,omitempty"`
	Iat   *int64      `cbor:"6,keyasint,omitempty"`
	HCert *hcertGroup `cbor:"-260,keyasint,omitempty"`
}

// Parse decodes a CWT claims payload. Unknown keys are ignored. Missing
// iss/iat/exp/hcert, or an hcert map without a key-1 CertificateData, fails
// with ErrMissingClaim/ErrMalformed respectively.
func Parse(payload []byte) (Claims, error) {
	var raw rawClaims
	if err := cbor.Unmarshal(payload, &raw); err != nil {
		return Claims{}, errors.Wrap(ErrMalformed, err.Error())
	}

	if raw.Iss == nil {
		return Claims{}, errors.Wrap(ErrMissingClaim, "iss")
	}
	if raw.Iat == nil {
		return Claims{}, errors.Wrap(ErrMissingClaim, "iat")
	}
	if raw.Exp == nil {
		return Claims{}, errors.Wrap(ErrMissingClaim, "exp")
	}
	if raw.HCert == nil {
		return Claims{}, errors.Wrap(ErrMissingClaim, "hcert")
	}
	if raw.HCert.Data == nil {
		return Claims{}, errors.Wrap(ErrMalformed, "hcert map has no key-1 CertificateData")
	}

	return Claims{
		Iss:   *raw.Iss,
		Iat:   *raw.Iat,
		Exp:   *raw.Exp,
		HCert: *raw.HCert.Data,
	}, nil
}
