package certrecord

import (
	"strings"
)

// Let's Encrypt's staging endpoint signs with issuers like "Fake LE Intermediate X1".
// the issuer string is the only way to tell staging and production certs apart,
// since the inventory store has no structured flag for it.
const stagingIssuerMarker = "fake"

// IneligibilityReason tells why a stored certificate cannot be selected as the
// current one. Empty string = eligible. These are not errors - the Locator
// just logs them and moves on to the next candidate.
type IneligibilityReason string

const (
	Eligible           IneligibilityReason = ""
	NotImported        IneligibilityReason = "not externally imported"
	AltNameMismatch    IneligibilityReason = "alternate names don't match managed domains"
	IssuerModeMismatch IneligibilityReason = "issuer staging/production mode mismatch"
)

// CheckEligibility applies the selection filters, in order, short-circuiting
// on the first failure. The private-key filter is not here because it needs
// the secret store - the Locator applies it separately.
func CheckEligibility(cert Info, managedDomains []string, staging bool) IneligibilityReason {
	// certificates the inventory store issued itself are managed by other
	// means - we only ever select ones we imported
	if cert.ImportedAt == nil {
		return NotImported
	}

	if !sameDomainSet(cert.AltNames, managedDomains) {
		return AltNameMismatch
	}

	if IsStagingIssuer(cert.Issuer) != staging {
		return IssuerModeMismatch
	}

	return Eligible
}

func IsStagingIssuer(issuer string) bool {
	return strings.Contains(strings.ToLower(issuer), stagingIssuerMarker)
}

// set equality - not subset/superset. order and duplicates don't matter.
func sameDomainSet(a []string, b []string) bool {
	asSet := func(domains []string) map[string]bool {
		set := map[string]bool{}
		for _, domain := range domains {
			set[domain] = true
		}
		return set
	}

	setA := asSet(a)
	setB := asSet(b)

	if len(setA) != len(setB) {
		return false
	}

	for domain := range setA {
		if !setB[domain] {
			return false
		}
	}

	return true
}
