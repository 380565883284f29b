package hcert

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePerson() Person {
	return Person{
		Surname:             "Müller",
		StandardizedSurname: "MUELLER",
		GivenName:           "Jan",
	}
}

func sampleVaccineCert() CertificateData {
	return CertificateData{
		DateOfBirth: "1990-01-01",
		Version:     "1.3.0",
		Person:      samplePerson(),
		Vaccine: []Vaccine{{
			Target:       "840539006",
			Vaccine:      "1119349007",
			Product:      "EU/1/20/1528",
			Manufacturer: "ORG-100030215",
			Doses:        2,
			DoseSeries:   2,
			Date:         "2021-03-18",
			Country:      "NL",
			Issuer:       "Ministry of Health",
			CertificateID: "urn:uvci:01:NL:abc123",
		}},
	}
}

func marshalClaims(t *testing.T, iss string, iat, exp int64, hcert *CertificateData) []byte {
	t.Helper()

	m := map[int]interface{}{}
	if iss != "" {
		m[1] = iss
	}
	m[6] = iat
	m[4] = exp
	if hcert != nil {
		m[-260] = map[int]interface{}{1: hcert}
	}

	b, err := cbor.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestParse_FullClaims(t *testing.T) {
	cert := sampleVaccineCert()
	payload := marshalClaims(t, "NL", 1000, 2000, &cert)

	claims, err := Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, "NL", claims.Iss)
	assert.EqualValues(t, 1000, claims.Iat)
	assert.EqualValues(t, 2000, claims.Exp)
	assert.False(t, claims.HCert.Ambiguous())
	require.Len(t, claims.HCert.Vaccine, 1)
	assert.Equal(t, "EU/1/20/1528", claims.HCert.Vaccine[0].Product)
}

func TestParse_MissingIss(t *testing.T) {
	cert := sampleVaccineCert()
	payload := marshalClaims(t, "", 1000, 2000, &cert)

	_, err := Parse(payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestParse_MissingHCert(t *testing.T) {
	payload := marshalClaims(t, "NL", 1000, 2000, nil)

	_, err := Parse(payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestParse_NotCBOR(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xff})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCertificateData_Ambiguous(t *testing.T) {
	cases := []struct {
		name string
		data CertificateData
		want bool
	}{
		{"none present", CertificateData{}, true},
		{"vaccine only", CertificateData{Vaccine: []Vaccine{{}}}, false},
		{"test only", CertificateData{Test: []Test{{}}}, false},
		{"recovery only", CertificateData{Recovery: []Recovery{{}}}, false},
		{"vaccine and test", CertificateData{Vaccine: []Vaccine{{}}, Test: []Test{{}}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.data.Ambiguous())
		})
	}
}

func TestParse_FullClaims_HCertRoundTrip(t *testing.T) {
	want := sampleVaccineCert()
	payload := marshalClaims(t, "NL", 1000, 2000, &want)

	claims, err := Parse(payload)
	require.NoError(t, err)

	if diff := cmp.Diff(want, claims.HCert); diff != "" {
		t.Errorf("HCert mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ExpBeforeIatAccepted(t *testing.T) {
	cert := sampleVaccineCert()
	// exp < iat is a policy question for callers (spec invariant I4), not
	// a parse failure.
	payload := marshalClaims(t, "NL", 2000, 1000, &cert)

	claims, err := Parse(payload)
	require.NoError(t, err)
	assert.Less(t, claims.Exp, claims.Iat)
}
