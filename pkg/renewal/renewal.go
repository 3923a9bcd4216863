// The renewal decision: keep exactly one TLS certificate identity fresh by
// locating the current certificate and replacing it when it's missing or
// about to expire.
package renewal

import (
	"context"
	"log"
	"time"

	"github.com/certbeat/certbeat/pkg/acmstore"
	"github.com/certbeat/certbeat/pkg/certrecord"
	"github.com/certbeat/certbeat/pkg/issuer"
	"github.com/certbeat/certbeat/pkg/secretstore"
	"github.com/function61/gokit/logex"
)

type Manager struct {
	locator  *Locator
	executor *Executor
	logl     *logex.Leveled
	now      func() time.Time
}

func New(
	conf Config,
	inventory acmstore.Inventory,
	secrets secretstore.Store,
	acme issuer.Issuer,
	logger *log.Logger,
) *Manager {
	return &Manager{
		locator:  NewLocator(conf, inventory, secrets, logger),
		executor: NewExecutor(conf, inventory, secrets, acme, logger),
		logl:     logex.Levels(logger),
		now:      time.Now,
	}
}

// EnsureCurrent is stateless between invocations - it recomputes everything
// from the stores each time, so re-running it with unchanged external state
// has no side effects.
func (m *Manager) EnsureCurrent(ctx context.Context) (*certrecord.Record, error) {
	current, err := m.locator.FindCurrent(ctx)
	if err != nil {
		return nil, err
	}

	if current == nil {
		return m.executor.Renew(ctx)
	}

	daysRemaining := certrecord.DaysRemaining(current.NotAfter, m.now())
	m.logl.Info.Printf("certificate has %d day(s) remaining", daysRemaining)

	if daysRemaining <= certrecord.RenewThresholdDays {
		return m.executor.Renew(ctx)
	}

	return current, nil
}

// FindCurrent locates without side effects (for status display).
func (m *Manager) FindCurrent(ctx context.Context) (*certrecord.Record, error) {
	return m.locator.FindCurrent(ctx)
}

// ForceRenew renews unconditionally, e.g. after a key compromise.
func (m *Manager) ForceRenew(ctx context.Context) (*certrecord.Record, error) {
	return m.executor.Renew(ctx)
}
