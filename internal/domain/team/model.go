package team

import (
	"fmt"
	"strings"

	"github.com/rdawebb/fixture-fetcher/internal/platform/slug"
)

// Team is a club entry of the team cache.
type Team struct {
	ID        int64
	Name      string
	ShortName string
	League    string
}

// League groups the cached teams of one competition, in cache order.
type League struct {
	Name  string
	Teams []Team
}

// DisplayName is the short name when known, otherwise the full name.
func (t Team) DisplayName() string {
	if strings.TrimSpace(t.ShortName) != "" {
		return t.ShortName
	}
	return t.Name
}

func (t Team) Slug() string {
	return slug.Make(t.DisplayName())
}

func (t Team) LeagueSlug() string {
	return slug.Make(t.League)
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.League) == "" {
		return fmt.Errorf("team %s: league is required", t.Name)
	}
	return nil
}
