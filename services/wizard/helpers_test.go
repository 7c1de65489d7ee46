package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"labbook/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func testCatalog() models.CatalogSnapshot {
	return models.CatalogSnapshot{
		Tests: []models.LabTest{
			{ID: "cbc", Name: "Complete Blood Count (CBC)", Category: "blood", Price: 25.99},
			{ID: "lipid", Name: "Lipid Panel", Category: "heart", Price: 35.50},
		},
		Combos: []models.ComboPackage{
			{ID: "complete", Name: "Complete Health Checkup", Price: 99.99, Tests: []string{"Complete Blood Count (CBC)", "Lipid Panel"}},
		},
	}
}

// ==========================
// Fake collaborators
// ==========================

type staticSlots struct {
	mu     sync.Mutex
	byDate map[string][]string
	err    error
	calls  []string
}

func (s *staticSlots) AvailableTimes(_ context.Context, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, date)
	if s.err != nil {
		return nil, s.err
	}
	if times, ok := s.byDate[date]; ok {
		return times, nil
	}
	return []string{"09:00 AM", "10:00 AM", "11:00 AM"}, nil
}

// gatedSlots blocks each lookup for a date until release(date) is called.
type gatedSlots struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	byDate  map[string][]string
	started chan string
}

func newGatedSlots(byDate map[string][]string) *gatedSlots {
	return &gatedSlots{gates: map[string]chan struct{}{}, byDate: byDate, started: make(chan string, 8)}
}

func (g *gatedSlots) gate(date string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[date]
	if !ok {
		ch = make(chan struct{})
		g.gates[date] = ch
	}
	return ch
}

func (g *gatedSlots) release(date string) {
	close(g.gate(date))
}

func (g *gatedSlots) AvailableTimes(ctx context.Context, date string) ([]string, error) {
	ch := g.gate(date)
	g.started <- date
	select {
	case <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.byDate[date], nil
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRecord), args.Error(1)
}

// blockingSubmitter parks Submit until unblock is closed.
type blockingSubmitter struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	unblock chan struct{}
	err     error
}

func newBlockingSubmitter() *blockingSubmitter {
	return &blockingSubmitter{entered: make(chan struct{}, 4), unblock: make(chan struct{})}
}

func (b *blockingSubmitter) Submit(_ context.Context, payload models.BookingPayload) (*models.BookingRecord, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.entered <- struct{}{}
	<-b.unblock
	if b.err != nil {
		return nil, b.err
	}
	return &models.BookingRecord{ID: "bk-1", BookingPayload: payload}, nil
}

func (b *blockingSubmitter) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

var errRemote = errors.New("record store unavailable")

// ==========================
// Test Helpers
// ==========================

func newTestWizard(t *testing.T, slots TimeSlotProvider, sub BookingSubmitter) *Wizard {
	t.Helper()
	if slots == nil {
		slots = &staticSlots{}
	}
	return New("wiz-test", Options{
		Slots:        slots,
		Submitter:    sub,
		Catalog:      testCatalog(),
		WindowMonths: 3,
		Location:     time.UTC,
		Now:          func() time.Time { return fixedNow },
	})
}

func fillContact(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.SetField(models.FieldName, "John Doe"))
	require.NoError(t, w.SetField(models.FieldEmail, "john@example.com"))
	require.NoError(t, w.SetField(models.FieldPhone, "1234567890"))
	require.NoError(t, w.SetField(models.FieldAddress, "123 Main St, Springfield"))
}

// toSelectionStep walks a wizard with a complete contact and schedule onto step 3.
func toSelectionStep(t *testing.T, w *Wizard) {
	t.Helper()
	fillContact(t, w)
	require.NoError(t, w.Continue())
	require.NoError(t, w.SetDate(context.Background(), "2026-10-20"))
	require.NoError(t, w.SetField(models.FieldSelectedTime, "10:00 AM"))
	require.NoError(t, w.Continue())
	require.Equal(t, StateSelection, w.State())
}
