package calendar

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

const (
	DefaultTimezone = "Europe/London"
	productID       = "-//fixture-fetcher//EN"
	eventDuration   = 2 * time.Hour
	localLayout     = "20060102T150405"
	utcLayout       = "20060102T150405Z"
	dateLayout      = "20060102"
)

type Option func(*ICSWriter)

// WithClock overrides the DTSTAMP source.
func WithClock(now func() time.Time) Option {
	return func(w *ICSWriter) {
		if now != nil {
			w.now = now
		}
	}
}

// ICSWriter renders fixtures as an iCalendar file, one VEVENT per fixture.
type ICSWriter struct {
	loc    *time.Location
	now    func() time.Time
	logger *logging.Logger
}

func NewICSWriter(loc *time.Location, logger *logging.Logger, opts ...Option) *ICSWriter {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	w := &ICSWriter{loc: loc, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// LoadLocation resolves a display timezone name, defaulting to
// DefaultTimezone when blank.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, crerr.Wrapf(err, "load calendar timezone %q", name)
	}
	return loc, nil
}

func (w *ICSWriter) Write(ctx context.Context, fixtures []fixture.Fixture, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", crerr.Mark(crerr.New("calendar path required"), usecase.ErrCalendarWrite)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cal := w.build(fixtures)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := cal.SerializeTo(buf); err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "serialise calendar %s", path), usecase.ErrCalendarWrite)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "create calendar dir for %s", path), usecase.ErrCalendarWrite)
	}
	if err := os.WriteFile(path, buf.B, 0o644); err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "write calendar %s", path), usecase.ErrCalendarWrite)
	}

	w.logger.DebugContext(ctx, "calendar written", "path", path, "events", len(fixtures))
	return path, nil
}

func (w *ICSWriter) build(fixtures []fixture.Fixture) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName(fixtures))
	cal.SetXWRTimezone(w.loc.String())

	stamp := w.now().UTC()
	for _, f := range fixtures {
		event := cal.AddEvent(eventUID(f))
		event.SetDtStampTime(stamp)
		event.SetSummary(eventSummary(f))
		event.SetDescription(eventDescription(f))

		if !f.HasKickoff() {
			continue
		}

		start := f.KickoffAt.In(w.loc)
		tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{w.loc.String()}}
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localLayout), tzid)
		event.SetProperty(ics.ComponentPropertyDtEnd, start.Add(eventDuration).Format(localLayout), tzid)
		if venue := strings.TrimSpace(f.Venue); venue != "" {
			event.SetLocation(venue)
		}
	}
	return cal
}
