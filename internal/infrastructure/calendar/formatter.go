package calendar

import (
	"fmt"
	"strings"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

const (
	uidDomain     = "fixture-fetcher"
	descSeparator = " | "
)

func eventUID(f fixture.Fixture) string {
	return f.ID + "@" + uidDomain
}

func eventSummary(f fixture.Fixture) string {
	summary := f.HomeTeam + " vs " + f.AwayTeam
	if !f.HasKickoff() {
		summary += " (TBC)"
	}
	return summary
}

// eventDescription is "CODE | TV | Matchday N | Venue" with absent parts
// dropped, or "CODE | Kickoff TBC" when the kickoff is unknown.
func eventDescription(f fixture.Fixture) string {
	if !f.HasKickoff() {
		return f.CompetitionCode + descSeparator + "Kickoff TBC"
	}

	parts := []string{f.CompetitionCode}
	if tv := strings.TrimSpace(f.TV); tv != "" {
		parts = append(parts, tv)
	}
	if f.Matchday != nil {
		parts = append(parts, fmt.Sprintf("Matchday %d", *f.Matchday))
	}
	if venue := strings.TrimSpace(f.Venue); venue != "" {
		parts = append(parts, venue)
	}
	return strings.Join(parts, descSeparator)
}

// calendarName is "Team Competition" taken from the first fixture.
func calendarName(fixtures []fixture.Fixture) string {
	if len(fixtures) == 0 {
		return "Fixtures"
	}
	f := fixtures[0]
	side := f.AwayTeam
	if f.IsHome {
		side = f.HomeTeam
	}
	return strings.TrimSpace(side + " " + f.Competition)
}
