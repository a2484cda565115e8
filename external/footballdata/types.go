package footballdata

type matchesEnvelope struct {
	Matches []apiMatch `json:"matches"`
}

type apiMatch struct {
	ID          int64          `json:"id"`
	UTCDate     string         `json:"utcDate"`
	Status      string         `json:"status"`
	Matchday    *int           `json:"matchday"`
	Venue       *string        `json:"venue"`
	Competition apiCompetition `json:"competition"`
	HomeTeam    apiTeam        `json:"homeTeam"`
	AwayTeam    apiTeam        `json:"awayTeam"`
}

type apiCompetition struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type apiTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

type teamsEnvelope struct {
	Competition apiCompetition `json:"competition"`
	Teams       []apiTeam      `json:"teams"`
}
