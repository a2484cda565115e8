package calendar

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	crerr "github.com/cockroachdb/errors"

	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

type eventKey struct {
	UID         string
	Start       string
	Description string
}

// CompareDirs reports whether the upcoming events (DTSTART after now) of
// the ICS files under oldDir and newDir differ. Events are compared by
// UID, start instant and description; unreadable files are skipped.
func CompareDirs(ctx context.Context, logger *logging.Logger, oldDir, newDir string, now time.Time) (bool, error) {
	if logger == nil {
		logger = logging.Default()
	}

	oldEvents, err := upcomingEvents(ctx, logger, oldDir, now)
	if err != nil {
		return false, err
	}
	newEvents, err := upcomingEvents(ctx, logger, newDir, now)
	if err != nil {
		return false, err
	}

	if len(oldEvents) != len(newEvents) {
		return true, nil
	}
	for key := range newEvents {
		if _, ok := oldEvents[key]; !ok {
			return true, nil
		}
	}
	return false, nil
}

func upcomingEvents(ctx context.Context, logger *logging.Logger, dir string, now time.Time) (map[eventKey]struct{}, error) {
	events := make(map[eventKey]struct{})
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logger.DebugContext(ctx, "calendar directory missing", "dir", dir)
		return events, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".ics") {
			return nil
		}

		cal, err := readCalendar(path)
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable calendar", "path", path, "error", err)
			return nil
		}
		for _, event := range cal.Events() {
			start, ok := eventStart(event)
			if !ok || !start.After(now) {
				continue
			}
			key := eventKey{
				UID:   event.Id(),
				Start: start.UTC().Format(time.RFC3339),
			}
			if prop := event.GetProperty(ics.ComponentPropertyDescription); prop != nil {
				key.Description = prop.Value
			}
			events[key] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "scan calendars in %s", dir)
	}
	return events, nil
}

func readCalendar(path string) (*ics.Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ics.ParseCalendar(f)
}

// eventStart parses DTSTART in any of the UTC, TZID-local or date-only
// forms.
func eventStart(event *ics.VEvent) (time.Time, bool) {
	prop := event.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return time.Time{}, false
	}

	value := prop.Value
	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse(utcLayout, value)
		return t, err == nil
	}

	loc := time.UTC
	if tzids := prop.ICalParameters[string(ics.ParameterTzid)]; len(tzids) > 0 {
		if l, err := time.LoadLocation(tzids[0]); err == nil {
			loc = l
		}
	}
	layout := localLayout
	if len(value) == len(dateLayout) {
		layout = dateLayout
	}
	t, err := time.ParseInLocation(layout, value, loc)
	return t, err == nil
}
