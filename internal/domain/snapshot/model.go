package snapshot

import (
	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

// Record is the persisted projection of a fixture. Fields are declared in
// key order so encoded files are stable.
type Record struct {
	AwayTeam        string  `json:"away_team"`
	Competition     string  `json:"competition"`
	CompetitionCode string  `json:"competition_code"`
	HomeTeam        string  `json:"home_team"`
	ID              string  `json:"id"`
	IsHome          bool    `json:"is_home"`
	Matchday        *int    `json:"matchday"`
	Status          string  `json:"status"`
	TV              *string `json:"tv"`
	UTCKickoff      *string `json:"utc_kickoff"`
	Venue           *string `json:"venue"`
}

// Snapshot maps fixture id to the record seen on the previous run.
type Snapshot map[string]Record

// Changes counts field differences between a run and its snapshot.
type Changes struct {
	Time   int `json:"time"`
	Venue  int `json:"venue"`
	TV     int `json:"tv"`
	Status int `json:"status"`
}

func (c Changes) Total() int {
	return c.Time + c.Venue + c.TV + c.Status
}

func (c Changes) IsZero() bool {
	return c.Total() == 0
}

func NewRecord(f fixture.Fixture) Record {
	return Record{
		AwayTeam:        f.AwayTeam,
		Competition:     f.Competition,
		CompetitionCode: f.CompetitionCode,
		HomeTeam:        f.HomeTeam,
		ID:              f.ID,
		IsHome:          f.IsHome,
		Matchday:        copyInt(f.Matchday),
		Status:          f.Status,
		TV:              optional(f.TV),
		UTCKickoff:      optional(f.KickoffISO()),
		Venue:           optional(f.Venue),
	}
}

// FromFixtures keys records by fixture id. A later duplicate id replaces
// an earlier one.
func FromFixtures(fixtures []fixture.Fixture) Snapshot {
	out := make(Snapshot, len(fixtures))
	for _, f := range fixtures {
		out[f.ID] = NewRecord(f)
	}
	return out
}

// Diff compares current fixtures against prev. Fixtures absent from prev
// are new, not changed, and are not counted.
func Diff(current []fixture.Fixture, prev Snapshot) Changes {
	var changes Changes
	if len(prev) == 0 {
		return changes
	}

	for _, f := range current {
		old, ok := prev[f.ID]
		if !ok {
			continue
		}
		if f.KickoffISO() != value(old.UTCKickoff) {
			changes.Time++
		}
		if f.Venue != value(old.Venue) {
			changes.Venue++
		}
		if f.TV != value(old.TV) {
			changes.TV++
		}
		if f.Status != old.Status {
			changes.Status++
		}
	}
	return changes
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
