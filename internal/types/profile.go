package types

// AcademicProfile holds a student's academic record and entrance-exam scores
// as submitted by the questionnaire. Exam score keys on the wire are the
// lower-case, space-separated names the frontend has always sent
// ("jee mains score", "neet score", ...). A missing key decodes to 0, which
// the eligibility rules read as "exam not attempted"; this collapse is
// deliberate and load-bearing (a zero score disqualifies, see eligibility).
type AcademicProfile struct {
	CurrentStream     string   `json:"current_stream"`
	TwelfthPercentage float64  `json:"12th_percentage"`
	JEEMainsScore     float64  `json:"jee mains score,omitempty"`
	JEEAdvancedScore  float64  `json:"jee advanced score,omitempty"`
	NEETScore         float64  `json:"neet score,omitempty"`
	CUETScore         float64  `json:"cuet score,omitempty"`
	Strengths         []string `json:"strengths,omitempty"`
	Weaknesses        []string `json:"weaknesses,omitempty"`
}

// Preferences are soft signals that influence scoring and the oracle's
// analysis but never hard-filter the candidate pool.
type Preferences struct {
	DesiredPrograms      []string `json:"desired_programs,omitempty"`
	LocationPreferences  []string `json:"location_preferences,omitempty"`
	CollegeType          string   `json:"college_type,omitempty"`
	CampusLifeImportance string   `json:"campus_life_importance,omitempty"`
}

// Constraints are the hard limits applied by the candidate filter.
// Locations match case-insensitively against either city or state.
type Constraints struct {
	Locations []string `json:"locations"`
	Budget    int      `json:"budget"`
	Timeline  string   `json:"timeline,omitempty"`
}

// RecommendationRequest is the inbound payload for the server recommendation
// path. All three sections are required; a missing section is an input
// validation failure, not an empty-pool result.
type RecommendationRequest struct {
	AcademicProfile *AcademicProfile `json:"academic_profile" validate:"required"`
	Preferences     *Preferences     `json:"preferences" validate:"required"`
	Constraints     *Constraints     `json:"constraints" validate:"required"`
}

// StudentProfile is the full questionnaire snapshot used by the local
// (oracle-free) ranking path. Percentage is kept as the raw string the form
// collected; consumers parse it defensively.
type StudentProfile struct {
	EducationLevel    string   `json:"education_level"` // grade12, diploma, equivalent
	Stream            string   `json:"stream"`          // science, commerce, arts, vocational, engineering, medical
	Percentage        string   `json:"percentage"`
	JEEMainsScore     float64  `json:"jee_mains_score,omitempty"`
	JEEAdvancedScore  float64  `json:"jee_advanced_score,omitempty"`
	NEETScore         float64  `json:"neet_score,omitempty"`
	CUETScore         float64  `json:"cuet_score,omitempty"`
	Interests         []string `json:"interests,omitempty"`
	CareerAspirations []string `json:"career_aspirations,omitempty"`
	PreferredLocation []string `json:"preferred_location,omitempty"`
	BudgetRange       string   `json:"budget_range,omitempty"` // under-1lakh ... above-10lakh
}
