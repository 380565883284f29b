// Package display renders verified DGC content for human consumption,
// and supplies the EU value-set translation tables (disease, vaccine
// type/product/manufacturer, test type/result codes) that turn the
// machine-readable codes in a certificate into readable labels.
//
// Rendering is explicitly out of the core decode/verify pipeline's scope
// (spec.md §1): nothing here participates in decoding or verification,
// it only formats an already-decoded certificate, verified or not.
package display

import (
	"fmt"
	"strings"

	"github.com/Nic0w/dgc-decoder/internal/hcert"
)

// FormatCertificate renders a certificate the way the CLI's decode
// (unverified) and verify commands print it. Only the first non-nil of
// vaccine, test and recovery, in that order, is rendered.
func FormatCertificate(person hcert.Person, dob string, vaccine *hcert.Vaccine, test *hcert.Test, recovery *hcert.Recovery, issuedAt, expiringAt fmt.Stringer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Digital Green Certificate for %s %s (born %s):\n", person.Surname, person.GivenName, dob)

	switch {
	case vaccine != nil:
		b.WriteString(FormatVaccine(*vaccine))
	case test != nil:
		b.WriteString(FormatTest(*test))
	case recovery != nil:
		b.WriteString(FormatRecovery(*recovery))
	}

	fmt.Fprintf(&b, "\tIssued at: %s\n\tExpiring at: %s\n", issuedAt, expiringAt)

	return b.String()
}

// FormatVaccine renders a vaccination record.
func FormatVaccine(v hcert.Vaccine) string {
	var b strings.Builder

	b.WriteString("Vaccine data:\n")
	fmt.Fprintf(&b, "\tTargeted disease: %s\n", TranslateDisease(v.Target))
	fmt.Fprintf(&b, "\tName: %s\n", TranslateMedicinalProduct(v.Product))
	fmt.Fprintf(&b, "\tType: %s\n", TranslateVaccineType(v.Vaccine))
	fmt.Fprintf(&b, "\tManufacturer: %s\n", TranslateMarketingOrg(v.Manufacturer))
	fmt.Fprintf(&b, "\tShot %.0f/%.0f done %s.\n", v.Doses, v.DoseSeries, v.Date)
	fmt.Fprintf(&b, "Certificate issued by %s (%s):\n", v.Issuer, v.Country)

	return b.String()
}

// FormatTest renders a test record.
func FormatTest(t hcert.Test) string {
	var b strings.Builder

	b.WriteString("Test data:\n")
	fmt.Fprintf(&b, "\tTargeted disease: %s\n", TranslateDisease(t.Target))
	fmt.Fprintf(&b, "\tTest type: %s\n", TranslateTestType(t.TestType))

	switch {
	case t.Name != "":
		fmt.Fprintf(&b, "\tTest name: %s\n", t.Name)
	case t.Manufacturer != "":
		fmt.Fprintf(&b, "\tTest device: %s\n", t.Manufacturer)
	}

	fmt.Fprintf(&b, "\tSample collection date: %s\n", t.SampleDatetime)
	fmt.Fprintf(&b, "\tTest result: %s\n", TranslateTestResult(t.TestResult))
	fmt.Fprintf(&b, "\tTest facility: %s\n", t.TestingCentre)
	fmt.Fprintf(&b, "\tTest id: %s\n", t.CertificateID)
	fmt.Fprintf(&b, "Certificate issued by %s (%s):\n", t.Issuer, t.Country)

	return b.String()
}

// FormatRecovery renders a recovery record.
func FormatRecovery(r hcert.Recovery) string {
	var b strings.Builder

	b.WriteString("Recovery data:\n")
	fmt.Fprintf(&b, "\tTargeted disease: %s\n", TranslateDisease(r.Target))
	fmt.Fprintf(&b, "\tDate of first NAAT positive test: %s\n", r.FirstPositiveTestDate)
	fmt.Fprintf(&b, "\tCertificate valid from: %s\n", r.ValidFromDate)
	fmt.Fprintf(&b, "\tCertificate valid until: %s\n", r.ValidUntilDate)
	fmt.Fprintf(&b, "\tCertificate id: %s\n", r.CertificateID)
	fmt.Fprintf(&b, "Certificate issued by %s (%s):\n", r.Issuer, r.Country)

	return b.String()
}

// TranslateDisease maps a SNOMED CT disease code to a readable label,
// falling back to the raw code for anything this table doesn't know.
func TranslateDisease(tg string) string {
	switch tg {
	case "840539006":
		return "COVID-19"
	default:
		return tg
	}
}

// TranslateVaccineType maps a SNOMED CT/ATC vaccine-type code.
func TranslateVaccineType(vp string) string {
	switch vp {
	case "1119305005":
		return "SARS-CoV2 antigen vaccine"
	case "1119349007":
		return "SARS-CoV2 mRNA vaccine"
	case "J07BX03":
		return "covid-19 vaccines"
	default:
		return vp
	}
}

// TranslateMedicinalProduct maps an EMA/WHO medicinal product code.
func TranslateMedicinalProduct(mp string) string {
	switch mp {
	case "EU/1/20/1528":
		return "Comirnaty"
	case "EU/1/20/1507":
		return "COVID-19 Vaccine Moderna"
	case "EU/1/21/1529":
		return "Vaxzevria"
	case "EU/1/20/1525":
		return "COVID-19 Vaccine Janssen"
	case "Covaxin":
		return "Covaxin (also known as BBV152 A, B, C)"
	case "Inactivated-SARS-CoV-2-Vero-Cell":
		return "Inactivated SARS-CoV-2 (Vero Cell)"
	default:
		return mp
	}
}

// TranslateMarketingOrg maps a marketing-authorization-holder code.
func TranslateMarketingOrg(ma string) string {
	switch ma {
	case "ORG-100001699":
		return "AstraZeneca AB"
	case "ORG-100030215":
		return "Biontech Manufacturing GmbH"
	case "ORG-100001417":
		return "Janssen-Cilag International"
	case "ORG-100031184":
		return "Moderna Biotech Spain S.L."
	case "ORG-100006270":
		return "Curevac AG"
	case "ORG-100013793":
		return "CanSino Biologics"
	case "ORG-100020693":
		return "China Sinopharm International Corp. - Beijing location"
	case "ORG-100010771":
		return "Sinopharm Weiqida Europe Pharmaceutical s.r.o. - Prague location"
	case "ORG-100024420":
		return "Sinopharm Zhijun (Shenzhen) Pharmaceutical Co. Ltd. - Shenzhen location"
	case "ORG-100032020":
		return "Novavax CZ AS"
	case "Gamaleya-Research-Institute":
		return "Gamaleya Research Institute"
	case "Vector-Institute":
		return "Vector Institute"
	case "Sinovac-Biotech":
		return "Sinovac Biotech"
	case "Bharat-Biotech":
		return "Bharat Biotech"
	default:
		return ma
	}
}

// TranslateTestType maps a LOINC test-type code.
func TranslateTestType(tt string) string {
	switch tt {
	case "LP6464-4":
		return "Nucleic acid amplification with probe detection"
	case "LP217198-3":
		return "Rapid immunoassay"
	default:
		return tt
	}
}

// TranslateTestResult maps a SNOMED CT test-result code.
func TranslateTestResult(tr string) string {
	switch tr {
	case "260415000":
		return "Not detected"
	case "260373001":
		return "Detected"
	default:
		return tr
	}
}
