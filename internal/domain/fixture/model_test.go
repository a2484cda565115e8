package fixture

import (
	"testing"
	"time"
)

func TestFixture_KickoffISO(t *testing.T) {
	t.Parallel()

	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	kickoff := time.Date(2025, 8, 16, 17, 30, 0, 0, london)
	f := Fixture{KickoffAt: &kickoff}

	if got := f.KickoffISO(); got != "2025-08-16T16:30:00+00:00" {
		t.Fatalf("unexpected kickoff iso: %s", got)
	}

	f.KickoffAt = nil
	if f.HasKickoff() || f.KickoffISO() != "" {
		t.Fatalf("expected tbc fixture to have no kickoff")
	}
}

func TestFixture_StatusAndTV(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status   string
		upcoming bool
	}{
		{status: StatusScheduled, upcoming: true},
		{status: StatusTimed, upcoming: true},
		{status: "timed", upcoming: false},
		{status: "", upcoming: false},
		{status: StatusLive, upcoming: false},
		{status: StatusPaused, upcoming: false},
		{status: StatusSuspended, upcoming: false},
		{status: StatusCancelled, upcoming: false},
		{status: StatusFinished, upcoming: false},
		{status: StatusPostponed, upcoming: false},
	}
	for _, tc := range cases {
		if got := (Fixture{Status: tc.status}).IsUpcoming(); got != tc.upcoming {
			t.Fatalf("status %q: upcoming=%t want %t", tc.status, got, tc.upcoming)
		}
	}

	if got := NormalizeStatus(" timed "); got != StatusTimed {
		t.Fatalf("normalise: got %q", got)
	}
	if got := NormalizeStatus(""); got != StatusScheduled {
		t.Fatalf("normalise empty: got %q", got)
	}

	if (Fixture{TV: " "}).IsTelevised() {
		t.Fatalf("blank tv must not count as televised")
	}
	if !(Fixture{TV: "TNT Sports"}).IsTelevised() {
		t.Fatalf("expected televised fixture")
	}
}

func TestFixture_Validate(t *testing.T) {
	t.Parallel()

	valid := Fixture{ID: "1", CompetitionCode: "PL", HomeTeam: "Arsenal", AwayTeam: "Chelsea"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid fixture: %v", err)
	}

	invalid := []Fixture{
		{CompetitionCode: "PL", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{ID: "1", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{ID: "1", CompetitionCode: "PL", HomeTeam: "Arsenal"},
	}
	for i, f := range invalid {
		if err := f.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestFixture_String(t *testing.T) {
	t.Parallel()

	f := Fixture{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Competition: "Premier League", IsHome: true}
	if got := f.String(); got != "Arsenal vs Chelsea (Premier League)" {
		t.Fatalf("unexpected home rendering: %s", got)
	}
	f.IsHome = false
	if got := f.String(); got != "Arsenal @ Chelsea (Premier League)" {
		t.Fatalf("unexpected away rendering: %s", got)
	}
}

func TestCompetitionName(t *testing.T) {
	t.Parallel()

	if got := CompetitionName("pl"); got != "Premier League" {
		t.Fatalf("unexpected name: %s", got)
	}
	if got := CompetitionName("BL1"); got != "BL1" {
		t.Fatalf("expected unknown code to pass through, got %s", got)
	}
}
