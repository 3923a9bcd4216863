// Obtaining brand new certificates from the ACME certificate authority.
// Two implementations: shelling out to certbot, or in-process with lego.
package issuer

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Issued is the raw output of one successful ACME issuance.
type Issued struct {
	CertPem  string // leaf
	ChainPem string // full chain
	KeyPem   string // never log this
}

type Issuer interface {
	// Obtain performs a full DNS-challenge-validated issuance.
	// An error means no certificate at all - there are no partial results.
	Obtain(ctx context.Context, domains []string, email string, staging bool) (*Issued, error)
}

// FromEnv picks the implementation from the ACME_CLIENT env var
// ("certbot" when unset).
func FromEnv(logger *log.Logger) (Issuer, error) {
	switch client := os.Getenv("ACME_CLIENT"); client {
	case "", "certbot":
		return NewCertbot(logger), nil
	case "lego":
		return NewLego(logger), nil
	default:
		return nil, fmt.Errorf("unknown ACME_CLIENT: %s", client)
	}
}
