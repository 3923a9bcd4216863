// The canonical model of one managed certificate and the rules that decide
// which stored certificate (if any) is the current one.
package certrecord

import (
	"time"
)

// Record is the one managed certificate the rest of the system passes around.
// Renewal never mutates a Record - it always produces a brand new one with a
// new identifier and a freshly stored private key.
type Record struct {
	CertPem    string    `json:"Certificate"`
	Identifier string    `json:"CertificateArn"`
	ChainPem   string    `json:"CertificateChain"`
	NotAfter   time.Time `json:"-"`          // only drives the renewal decision, not part of the output payload
	PrivateKey string    `json:"PrivateKey"` // PEM. never log this
}

// Info is the inventory store's metadata for one stored certificate,
// i.e. what the Locator's eligibility filters operate on.
type Info struct {
	Identifier string
	Subject    string
	AltNames   []string
	Issuer     string
	ImportedAt *time.Time // nil for certificates the store issued itself
	NotAfter   time.Time
}
