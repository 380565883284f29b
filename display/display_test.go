package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nic0w/dgc-decoder/internal/hcert"
)

func TestTranslateDisease_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "COVID-19", TranslateDisease("840539006"))
	assert.Equal(t, "unknown-code", TranslateDisease("unknown-code"))
}

func TestTranslateMedicinalProduct(t *testing.T) {
	assert.Equal(t, "Comirnaty", TranslateMedicinalProduct("EU/1/20/1528"))
}

func TestFormatCertificate_PicksVaccineOverOthers(t *testing.T) {
	person := hcert.Person{Surname: "Doe", GivenName: "Jane"}
	vaccine := &hcert.Vaccine{Target: "840539006", Product: "EU/1/20/1528"}

	test := &hcert.Test{TestType: "LP6464-4"}
	recovery := &hcert.Recovery{Target: "840539006"}

	out := FormatCertificate(person, "1990-01-01", vaccine, test, recovery, fakeTime(1000), fakeTime(2000))

	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "Comirnaty")
	assert.Contains(t, out, "Vaccine data:")
}

func TestFormatTest_PrefersNameOverManufacturer(t *testing.T) {
	test := hcert.Test{TestType: "LP6464-4", Name: "PCR test", Manufacturer: "should not appear"}

	out := FormatTest(test)
	assert.Contains(t, out, "PCR test")
	assert.NotContains(t, out, "should not appear")
}

func fakeTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
