package usecase

import (
	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/override"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

// OverrideResult summarises one override pass.
type OverrideResult struct {
	// Applied counts entries that gave a fixture its first broadcaster.
	Applied int `json:"applied"`
	// Replaced counts entries that swapped an existing, different broadcaster.
	Replaced int `json:"replaced"`
	// Matched counts entries that hit a fixture, including no-op re-sets.
	Matched int `json:"matched"`
}

type OverrideResolver struct {
	logger *logging.Logger
}

func NewOverrideResolver(logger *logging.Logger) *OverrideResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &OverrideResolver{logger: logger}
}

// ApplyOverrides applies set to fixtures in place using the default logger.
func ApplyOverrides(fixtures []fixture.Fixture, set override.Set) OverrideResult {
	return NewOverrideResolver(nil).Apply(fixtures, set)
}

// Apply sets the TV field of matching fixtures in place. Each active entry
// is matched by exact fixture id first, where the last fixture carrying a
// duplicated id wins. Otherwise it falls back to the composite key against
// fixtures with a known kickoff, where the first fixture in input order wins.
func (r *OverrideResolver) Apply(fixtures []fixture.Fixture, set override.Set) OverrideResult {
	var result OverrideResult
	if len(set) == 0 || len(fixtures) == 0 {
		return result
	}

	byID := make(map[string]int, len(fixtures))
	byComposite := make(map[string][]int, len(fixtures))
	for i, f := range fixtures {
		byID[f.ID] = i
		if key, ok := override.CompositeKey(f); ok {
			byComposite[key] = append(byComposite[key], i)
		}
	}

	for _, entry := range set {
		if !entry.Active() {
			continue
		}

		idx, ok := byID[entry.Key]
		if !ok {
			candidates := byComposite[entry.Key]
			if len(candidates) == 0 {
				continue
			}
			if len(candidates) > 1 {
				r.logger.Warn("override key matches several fixtures, using the first",
					"key", entry.Key,
					"matches", len(candidates),
					"fixture_id", fixtures[candidates[0]].ID,
				)
			}
			idx = candidates[0]
		}

		tv := entry.TV
		previous := fixtures[idx].TV
		switch {
		case previous == "":
			result.Applied++
		case previous != tv:
			result.Replaced++
		}
		fixtures[idx].TV = tv
		result.Matched++
	}

	return result
}
