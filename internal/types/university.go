// Package types provides type definitions for structured data used throughout the counselling system.
package types

import "encoding/json"

// University is a single catalog record as it appears in universities.json.
// Numeric fields (fees, thresholds, packages) are stored as raw strings and
// must always be re-derived through the parsing package; they are never
// persisted pre-parsed.
type University struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	City                  string          `json:"city"`
	State                 string          `json:"state"`
	LocationType          string          `json:"location_type,omitempty"` // metro, tier2, tier3
	Type                  string          `json:"type,omitempty"`          // government, private, deemed
	NIRFRank              int             `json:"nirf_rank,omitempty"`
	ProgramsOffered       []string        `json:"programs_offered,omitempty"`
	Courses               []Course        `json:"courses,omitempty"`
	Facilities            []string        `json:"facilities,omitempty"`
	AnnualFees            string          `json:"annual_fees"`
	PlacementRate         string          `json:"placement_rate,omitempty"`
	AveragePackage        string          `json:"average_package,omitempty"`
	MedianPackage         string          `json:"median_package,omitempty"`
	Min12thScoreRequired  string          `json:"min_12th_score_required"`
	ExamsAccepted         []string        `json:"exams_accepted,omitempty"`
	MinPercentileRequired string          `json:"min_percentile_required,omitempty"`
	StreamRequirements    []string        `json:"stream_requirements,omitempty"`
	OfficialPage          string          `json:"official_page,omitempty"`
	Scores                json.RawMessage `json:"scores,omitempty"` // opaque, forwarded to the analysis oracle as-is
}

// Course is a degree program offered by a university.
type Course struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Degree          string   `json:"degree"` // BTech, BE, BSc, BCom, BA, BBA, BCA, Diploma, Other
	Duration        string   `json:"duration,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	CareerPaths     []string `json:"career_paths,omitempty"`
}
