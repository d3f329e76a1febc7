// Package scholarships matches students against scholarship programs and
// entrance exams. Both datasets are static JSON files loaded at startup.
package scholarships

// Amount is a scholarship's award range in rupees.
type Amount struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ScholarshipEligibility holds the hard requirements for a scholarship.
// Course is optional; empty means any stream qualifies.
type ScholarshipEligibility struct {
	EducationLevel    []string `json:"education_level"`
	MinimumPercentage float64  `json:"minimum_percentage"`
	Course            []string `json:"course,omitempty"`
}

// Scholarship is one program as stored in scholarships.json.
type Scholarship struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Provider    string                 `json:"provider"` // government, private, institutional
	Type        string                 `json:"type"`     // merit, need-based, category
	Description string                 `json:"description,omitempty"`
	Amount      Amount                 `json:"amount"`
	Eligibility ScholarshipEligibility `json:"eligibility"`
	Deadline    string                 `json:"deadline,omitempty"`
	Website     string                 `json:"website,omitempty"`
	IsActive    bool                   `json:"is_active"`
}

// ExamEligibility holds the hard requirements for an entrance exam.
type ExamEligibility struct {
	EducationLevel    []string `json:"education_level"`
	MinimumPercentage float64  `json:"minimum_percentage"`
}

// ExamScope describes the streams and courses an exam feeds into.
type ExamScope struct {
	Streams []string `json:"streams"`
	Courses []string `json:"courses"`
}

// EntranceExam is one exam as stored in entrance_exams.json.
type EntranceExam struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"` // national, state, university
	Description   string          `json:"description,omitempty"`
	Eligibility   ExamEligibility `json:"eligibility"`
	ApplicableFor ExamScope       `json:"applicable_for"`
	ExamDate      string          `json:"exam_date,omitempty"`
	Website       string          `json:"website,omitempty"`
	IsActive      bool            `json:"is_active"`
}
