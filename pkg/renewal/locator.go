package renewal

import (
	"context"
	"errors"
	"log"

	"github.com/certbeat/certbeat/pkg/acmstore"
	"github.com/certbeat/certbeat/pkg/certrecord"
	"github.com/certbeat/certbeat/pkg/secretstore"
	"github.com/function61/gokit/logex"
)

// Locator finds the current certificate from the inventory store.
// Read-only - it never changes any external state.
type Locator struct {
	conf      Config
	inventory acmstore.Inventory
	secrets   secretstore.Store
	logl      *logex.Leveled
}

func NewLocator(
	conf Config,
	inventory acmstore.Inventory,
	secrets secretstore.Store,
	logger *log.Logger,
) *Locator {
	return &Locator{
		conf:      conf,
		inventory: inventory,
		secrets:   secrets,
		logl:      logex.Levels(logger),
	}
}

// FindCurrent returns the best eligible candidate - the most recently
// imported certificate that covers exactly the managed domains, matches the
// staging/production mode and has a retrievable private key. (nil, nil) when
// none qualifies.
func (l *Locator) FindCurrent(ctx context.Context) (*certrecord.Record, error) {
	summaries, err := l.inventory.ListIssued(ctx)
	if err != nil {
		return nil, err
	}

	var latest *certrecord.Info
	latestKey := ""

	for _, summary := range summaries {
		// a different subject means a different certificate identity that
		// some other deployment manages - not even worth describing
		if summary.Subject != l.conf.Subject() {
			continue
		}

		cert, err := l.inventory.Describe(ctx, summary.Identifier)
		if err != nil {
			return nil, err
		}

		if reason := certrecord.CheckEligibility(*cert, l.conf.Domains, l.conf.Staging); reason != certrecord.Eligible {
			l.logl.Info.Printf("skipping %s: %s", cert.Identifier, reason)
			continue
		}

		privateKey, err := l.secrets.Get(ctx, secretstore.PrivateKeyName(l.conf.Identity, cert.Identifier))
		if err != nil {
			if errors.Is(err, secretstore.ErrNotFound) {
				// a certificate whose key we cannot produce is useless,
				// no matter how fresh it is
				l.logl.Info.Printf("skipping %s: private key not in secret store", cert.Identifier)
				continue
			}

			return nil, err
		}

		// keep only the most recently imported one
		if latest != nil && !cert.ImportedAt.After(*latest.ImportedAt) {
			continue
		}

		latest = cert
		latestKey = privateKey
	}

	if latest == nil {
		l.logl.Info.Printf("no current certificate for %s", l.conf.Subject())
		return nil, nil
	}

	l.logl.Info.Printf("found certificate %s", latest.Identifier)

	certPem, chainPem, err := l.inventory.FetchBody(ctx, latest.Identifier)
	if err != nil {
		return nil, err
	}

	return &certrecord.Record{
		CertPem:    certPem,
		Identifier: latest.Identifier,
		ChainPem:   chainPem,
		NotAfter:   latest.NotAfter,
		PrivateKey: latestKey,
	}, nil
}
