package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"
)

// StaticSlotProvider offers the same labelled slots every day inside the booking window.
type StaticSlotProvider struct {
	labels []string
	months int
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*StaticSlotProvider)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *StaticSlotProvider) { p.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *StaticSlotProvider) { p.logger = logger }
}

// NewStaticSlotProvider validates the labels up front so lookups never fail on them.
func NewStaticSlotProvider(labels []string, windowMonths int, loc *time.Location, opts ...Option) (*StaticSlotProvider, error) {
	for _, l := range labels {
		if _, err := time.Parse(TimeLayout, l); err != nil {
			return nil, fmt.Errorf("invalid time slot label %q: %w", l, err)
		}
	}
	if loc == nil {
		loc = time.Local
	}
	if windowMonths <= 0 {
		windowMonths = 3
	}
	p := &StaticSlotProvider{
		labels: append([]string(nil), labels...),
		months: windowMonths,
		loc:    loc,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// AvailableTimes lists the slot labels still bookable on date. Slots that have
// already started today are left out; dates outside the window have none.
func (p *StaticSlotProvider) AvailableTimes(ctx context.Context, date string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(DateLayout, date, p.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	now := p.now().In(p.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)
	last := today.AddDate(0, p.months, 0)
	if day.Before(today) || day.After(last) {
		p.logger.Debug("date outside booking window", zap.String("date", date))
		return []string{}, nil
	}

	times := make([]string, 0, len(p.labels))
	for _, label := range p.labels {
		if day.Equal(today) {
			clock, _ := time.Parse(TimeLayout, label)
			start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, p.loc)
			if !start.After(now) {
				continue
			}
		}
		times = append(times, label)
	}
	return times, nil
}
