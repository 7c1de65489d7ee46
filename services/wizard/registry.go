package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"labbook/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegistryConfig configures how wizards are created and evicted.
type RegistryConfig struct {
	Catalog      CatalogSource
	Slots        TimeSlotProvider
	Submitter    BookingSubmitter
	WindowMonths int
	Location     *time.Location
	IdleTTL      time.Duration
	Now          func() time.Time
	Logger       *zap.Logger
}

type entry struct {
	owner  string
	wizard *Wizard
}

// Registry keeps the open wizards of this process, one per booking form.
type Registry struct {
	mu      sync.Mutex
	entries map[string]entry
	cfg     RegistryConfig
}

func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Registry{entries: map[string]entry{}, cfg: cfg}
}

// Open creates a wizard for ownerID over a fresh catalog snapshot.
func (r *Registry) Open(ctx context.Context, ownerID string) (*Wizard, error) {
	snapshot, err := r.cfg.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	id := uuid.New().String()
	w := New(id, Options{
		Slots:        r.cfg.Slots,
		Submitter:    r.cfg.Submitter,
		Catalog:      snapshot,
		WindowMonths: r.cfg.WindowMonths,
		Location:     r.cfg.Location,
		Now:          r.cfg.Now,
		Logger:       r.cfg.Logger,
	})

	r.mu.Lock()
	r.entries[id] = entry{owner: ownerID, wizard: w}
	r.mu.Unlock()
	metrics.WizardsOpen.Inc()

	r.cfg.Logger.Debug("wizard opened", zap.String("wizardID", id), zap.String("owner", ownerID))
	return w, nil
}

// Get returns the wizard if it exists and belongs to ownerID.
func (r *Registry) Get(id, ownerID string) (*Wizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.owner != ownerID {
		return nil, ErrWizardNotFound
	}
	return e.wizard, nil
}

// Cancel closes the wizard (subject to its confirmation rule) and forgets it.
func (r *Registry) Cancel(id, ownerID string, confirmed bool) error {
	w, err := r.Get(id, ownerID)
	if err != nil {
		return err
	}
	if err := w.Cancel(confirmed); err != nil {
		return err
	}
	r.remove(id)
	return nil
}

// Len reports how many wizards are open.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep closes wizards idle for longer than the TTL and returns how many it evicted.
// Wizards with a submission in flight are left alone.
func (r *Registry) Sweep() int {
	cutoff := r.cfg.Now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var stale []entry
	for id, e := range r.entries {
		// A submission in flight is not idle, however long the remote store takes.
		if e.wizard.State() == StateSubmitting {
			continue
		}
		if e.wizard.LastActive().Before(cutoff) || e.wizard.Closed() {
			stale = append(stale, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range stale {
		e.wizard.Close()
		metrics.WizardsOpen.Dec()
	}
	if len(stale) > 0 {
		r.cfg.Logger.Info("evicted idle wizards", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Run sweeps on every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	_, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		metrics.WizardsOpen.Dec()
	}
}
