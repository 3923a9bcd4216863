package certrecord

import (
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

var managedDomains = []string{"example.com", "www.example.com"}

func TestCheckEligibility(t *testing.T) {
	eligible := exampleInfo()

	assert.Assert(t, CheckEligibility(eligible, managedDomains, false) == Eligible)

	// order of alternate names must not matter
	shuffled := exampleInfo()
	shuffled.AltNames = []string{"www.example.com", "example.com"}
	assert.Assert(t, CheckEligibility(shuffled, managedDomains, false) == Eligible)
}

func TestCheckEligibilityNotImported(t *testing.T) {
	// inventory-store-issued certificate (no import timestamp) is managed by
	// other means and must never be selected
	storeIssued := exampleInfo()
	storeIssued.ImportedAt = nil

	assert.Assert(t, CheckEligibility(storeIssued, managedDomains, false) == NotImported)
}

func TestCheckEligibilityAltNames(t *testing.T) {
	// subset
	subset := exampleInfo()
	subset.AltNames = []string{"example.com"}
	assert.Assert(t, CheckEligibility(subset, managedDomains, false) == AltNameMismatch)

	// superset
	superset := exampleInfo()
	superset.AltNames = []string{"example.com", "www.example.com", "mail.example.com"}
	assert.Assert(t, CheckEligibility(superset, managedDomains, false) == AltNameMismatch)

	// disjoint
	other := exampleInfo()
	other.AltNames = []string{"other.net"}
	assert.Assert(t, CheckEligibility(other, managedDomains, false) == AltNameMismatch)
}

func TestCheckEligibilityIssuerMode(t *testing.T) {
	production := exampleInfo()
	staging := exampleInfo()
	staging.Issuer = "Fake LE Intermediate X1"

	// production run must not pick up staging certs and vice versa,
	// no matter how valid they otherwise are
	assert.Assert(t, CheckEligibility(production, managedDomains, false) == Eligible)
	assert.Assert(t, CheckEligibility(production, managedDomains, true) == IssuerModeMismatch)
	assert.Assert(t, CheckEligibility(staging, managedDomains, true) == Eligible)
	assert.Assert(t, CheckEligibility(staging, managedDomains, false) == IssuerModeMismatch)
}

func TestIsStagingIssuer(t *testing.T) {
	assert.Assert(t, IsStagingIssuer("Fake LE Intermediate X1"))
	assert.Assert(t, IsStagingIssuer("fake authority"))
	assert.Assert(t, !IsStagingIssuer("Let's Encrypt Authority X3"))
}

func exampleInfo() Info {
	importedAt := time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC)

	return Info{
		Identifier: "arn:aws:acm:us-east-1:123456789012:certificate/11112222-3333-4444-5555-666677778888",
		Subject:    "example.com",
		AltNames:   []string{"example.com", "www.example.com"},
		Issuer:     "Let's Encrypt Authority X3",
		ImportedAt: &importedAt,
		NotAfter:   importedAt.AddDate(0, 3, 0),
	}
}
