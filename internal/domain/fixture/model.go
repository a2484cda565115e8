package fixture

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusLive      = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusSuspended = "SUSPENDED"
	StatusCancelled = "CANCELLED"
)

// KickoffLayout renders kickoffs the way snapshots and override templates
// store them: second precision with a numeric offset.
const KickoffLayout = "2006-01-02T15:04:05-07:00"

// CompetitionNames maps the supported competition codes to display names.
var CompetitionNames = map[string]string{
	"PL":  "Premier League",
	"FA":  "FA Cup",
	"EC":  "EFL Cup",
	"CL":  "Champions League",
	"EL":  "Europa League",
	"UEL": "Europa Conference League",
}

// DefaultCompetitionCodes is the fetch order used when a caller names no
// competitions. Domestic league first.
var DefaultCompetitionCodes = []string{"PL", "FA", "EC", "CL", "EL", "UEL"}

// Fixture represents one scheduled or played match as seen by a team of
// interest.
type Fixture struct {
	ID              string
	Competition     string
	CompetitionCode string
	Matchday        *int
	KickoffAt       *time.Time
	HomeTeam        string
	AwayTeam        string
	Venue           string
	Status          string
	TV              string
	IsHome          bool
}

func (f Fixture) HasKickoff() bool {
	return f.KickoffAt != nil && !f.KickoffAt.IsZero()
}

// KickoffISO returns the UTC kickoff in KickoffLayout, or "" when TBC.
func (f Fixture) KickoffISO() string {
	if !f.HasKickoff() {
		return ""
	}
	return f.KickoffAt.UTC().Format(KickoffLayout)
}

// IsUpcoming reports whether the match has not been played yet.
func (f Fixture) IsUpcoming() bool {
	return IsUpcomingStatus(f.Status)
}

func (f Fixture) IsTelevised() bool {
	return strings.TrimSpace(f.TV) != ""
}

func (f Fixture) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("fixture id is required")
	}
	if strings.TrimSpace(f.CompetitionCode) == "" {
		return fmt.Errorf("fixture %s: competition code is required", f.ID)
	}
	if strings.TrimSpace(f.HomeTeam) == "" || strings.TrimSpace(f.AwayTeam) == "" {
		return fmt.Errorf("fixture %s: home and away teams are required", f.ID)
	}
	return nil
}

func (f Fixture) String() string {
	sep := "@"
	if f.IsHome {
		sep = "vs"
	}
	return fmt.Sprintf("%s %s %s (%s)", f.HomeTeam, sep, f.AwayTeam, f.Competition)
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsUpcomingStatus reports whether status is exactly SCHEDULED or TIMED.
// Callers normalise provider values before they reach here.
func IsUpcomingStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusTimed:
		return true
	default:
		return false
	}
}

// CompetitionName resolves a code to its display name, falling back to
// the code itself.
func CompetitionName(code string) string {
	if name, ok := CompetitionNames[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}
