package renewal

import (
	"context"
	"fmt"
	"log"

	"github.com/certbeat/certbeat/pkg/acmstore"
	"github.com/certbeat/certbeat/pkg/certrecord"
	"github.com/certbeat/certbeat/pkg/issuer"
	"github.com/certbeat/certbeat/pkg/secretstore"
	"github.com/function61/gokit/logex"
)

// Executor obtains a brand new certificate and registers it as the current
// one: import into the inventory store, private key into the secret store.
// This is the only place the system's observable external state changes.
type Executor struct {
	conf      Config
	inventory acmstore.Inventory
	secrets   secretstore.Store
	acme      issuer.Issuer
	logl      *logex.Leveled
}

func NewExecutor(
	conf Config,
	inventory acmstore.Inventory,
	secrets secretstore.Store,
	acme issuer.Issuer,
	logger *log.Logger,
) *Executor {
	return &Executor{
		conf:      conf,
		inventory: inventory,
		secrets:   secrets,
		acme:      acme,
		logl:      logex.Levels(logger),
	}
}

func (e *Executor) Renew(ctx context.Context) (*certrecord.Record, error) {
	issued, err := e.acme.Obtain(ctx, e.conf.Domains, e.conf.Email, e.conf.Staging)
	if err != nil {
		return nil, fmt.Errorf("obtain certificate: %w", err)
	}

	e.logl.Info.Printf("importing certificate into inventory store")

	identifier, err := e.inventory.Import(ctx, issued.CertPem, issued.ChainPem, issued.KeyPem)
	if err != nil {
		return nil, err
	}

	e.logl.Info.Printf("storing private key for %s", identifier)

	if err := e.secrets.Put(
		ctx,
		secretstore.PrivateKeyName(e.conf.Identity, identifier),
		"Private key for "+identifier,
		issued.KeyPem,
	); err != nil {
		return nil, err
	}

	// the inventory store's idea of expiry is authoritative over whatever
	// the ACME client wrote to its local files
	cert, err := e.inventory.Describe(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return &certrecord.Record{
		CertPem:    issued.CertPem,
		Identifier: identifier,
		ChainPem:   issued.ChainPem,
		NotAfter:   cert.NotAfter,
		PrivateKey: issued.KeyPem,
	}, nil
}
