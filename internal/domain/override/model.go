package override

import "github.com/rdawebb/fixture-fetcher/internal/domain/fixture"

const compositeDateLayout = "2006-01-02"

// Entry is one broadcaster correction. Key is either a fixture id or a
// composite key built by CompositeKey.
type Entry struct {
	Key string
	TV  string
}

// Active reports whether the entry carries a broadcaster to apply.
func (e Entry) Active() bool {
	return e.TV != ""
}

// Set holds override entries in file order.
type Set []Entry

// CompositeKey returns "{YYYY-MM-DD}:{home}:{away}" using the UTC kickoff
// date. The second result is false when the kickoff is TBC.
func CompositeKey(f fixture.Fixture) (string, bool) {
	if !f.HasKickoff() {
		return "", false
	}
	return f.KickoffAt.UTC().Format(compositeDateLayout) + ":" + f.HomeTeam + ":" + f.AwayTeam, true
}
