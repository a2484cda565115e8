package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/override"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

// EnrichmentStats is reported to users only; nothing branches on it.
type EnrichmentStats struct {
	TVOverridesApplied int `json:"tv_overrides_applied"`
	TVReplaced         int `json:"tv_replaced"`
	TVBefore           int `json:"tv_before"`
	TVAfter            int `json:"tv_after"`
}

type EnrichmentService struct {
	source   override.Source
	resolver *OverrideResolver
	logger   *logging.Logger
}

func NewEnrichmentService(source override.Source, logger *logging.Logger) *EnrichmentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EnrichmentService{
		source:   source,
		resolver: NewOverrideResolver(logger),
		logger:   logger,
	}
}

// EnrichAll applies the overrides at overridesPath to fixtures in place.
// It never fails: a missing file is a no-op and load errors are logged and
// reported as zero applied.
func (s *EnrichmentService) EnrichAll(ctx context.Context, fixtures []fixture.Fixture, overridesPath string) EnrichmentStats {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.EnrichAll",
		attribute.Int("fixtures", len(fixtures)),
	)
	defer span.End()

	stats := EnrichmentStats{TVBefore: countTelevised(fixtures)}
	overridesPath = strings.TrimSpace(overridesPath)

	if overridesPath != "" && s.source != nil {
		set, found, err := s.source.Load(ctx, overridesPath)
		switch {
		case err != nil:
			recordSpanError(span, err)
			s.logger.WarnContext(ctx, "tv overrides unavailable, skipping enrichment",
				"path", overridesPath,
				"error", err,
			)
		case !found:
			s.logger.DebugContext(ctx, "no tv overrides file", "path", overridesPath)
		default:
			result := s.resolver.Apply(fixtures, set)
			stats.TVOverridesApplied = result.Applied
			stats.TVReplaced = result.Replaced
			s.logger.DebugContext(ctx, "tv overrides applied",
				"path", overridesPath,
				"entries", len(set),
				"applied", result.Applied,
				"replaced", result.Replaced,
				"matched", result.Matched,
			)
		}
	}

	stats.TVAfter = countTelevised(fixtures)
	return stats
}

func countTelevised(fixtures []fixture.Fixture) int {
	count := 0
	for _, f := range fixtures {
		if f.IsTelevised() {
			count++
		}
	}
	return count
}
