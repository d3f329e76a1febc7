package scholarships

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/types"
)

// Finder serves scholarship and entrance-exam lookups over the two static
// datasets. Construct with NewFinder, then Load once before serving.
type Finder struct {
	scholarshipsPath string
	examsPath        string

	scholarships []Scholarship
	exams        []EntranceExam
}

// NewFinder creates a finder reading from the given dataset paths.
func NewFinder(scholarshipsPath, examsPath string) *Finder {
	return &Finder{
		scholarshipsPath: scholarshipsPath,
		examsPath:        examsPath,
	}
}

// Load reads both datasets concurrently. Either file failing fails the load.
func (f *Finder) Load(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		return readDataset(f.scholarshipsPath, &f.scholarships)
	})
	g.Go(func() error {
		return readDataset(f.examsPath, &f.exams)
	})

	return g.Wait()
}

func readDataset[T any](path string, out *[]T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return nil
}

// FindScholarships returns the active scholarships the student is eligible
// for, most relevant first.
func (f *Finder) FindScholarships(profile types.StudentProfile) []Scholarship {
	matched := make([]Scholarship, 0)
	for _, s := range f.scholarships {
		if f.isScholarshipEligible(s, profile) {
			matched = append(matched, s)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return scholarshipScore(matched[i], profile) > scholarshipScore(matched[j], profile)
	})
	return matched
}

// FindExams returns the active entrance exams relevant to the student, most
// relevant first.
func (f *Finder) FindExams(profile types.StudentProfile) []EntranceExam {
	matched := make([]EntranceExam, 0)
	for _, e := range f.exams {
		if f.isExamRelevant(e, profile) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return examRelevance(matched[i], profile) > examRelevance(matched[j], profile)
	})
	return matched
}

// ScholarshipByID returns the scholarship with the given id, or nil.
func (f *Finder) ScholarshipByID(id string) *Scholarship {
	for i := range f.scholarships {
		if f.scholarships[i].ID == id {
			return &f.scholarships[i]
		}
	}
	return nil
}

// ExamByID returns the exam with the given id, or nil.
func (f *Finder) ExamByID(id string) *EntranceExam {
	for i := range f.exams {
		if f.exams[i].ID == id {
			return &f.exams[i]
		}
	}
	return nil
}

func (f *Finder) isScholarshipEligible(s Scholarship, profile types.StudentProfile) bool {
	if !containsString(s.Eligibility.EducationLevel, profile.EducationLevel) {
		return false
	}

	// An unparseable percentage disqualifies here, unlike the eligibility
	// band: scholarships have a real cutoff to verify against.
	percentage := parsing.ParsePercentage(profile.Percentage)
	if percentage < 0 || percentage < s.Eligibility.MinimumPercentage {
		return false
	}

	if len(s.Eligibility.Course) > 0 {
		stream := strings.ToLower(profile.Stream)
		if !anyContains(s.Eligibility.Course, stream) {
			return false
		}
	}

	return s.IsActive
}

func (f *Finder) isExamRelevant(e EntranceExam, profile types.StudentProfile) bool {
	if !containsString(e.Eligibility.EducationLevel, profile.EducationLevel) {
		return false
	}

	stream := strings.ToLower(profile.Stream)
	if !anyContains(e.ApplicableFor.Streams, stream) {
		return false
	}

	percentage := parsing.ParsePercentage(profile.Percentage)
	if percentage < 0 || percentage < e.Eligibility.MinimumPercentage {
		return false
	}

	return e.IsActive
}

// scholarshipScore ranks eligible scholarships: award size scaled down,
// plus flat bonuses for government provider, merit fit, and need fit.
func scholarshipScore(s Scholarship, profile types.StudentProfile) float64 {
	score := float64(s.Amount.Max) / 100000 * 10

	if s.Provider == "government" {
		score += 20
	}
	if s.Type == "merit" && parsing.ParsePercentage(profile.Percentage) > 80 {
		score += 15
	}
	if s.Type == "need-based" &&
		(profile.BudgetRange == "under-1lakh" || profile.BudgetRange == "1-3lakh") {
		score += 25
	}

	return score
}

// examRelevance ranks relevant exams: national over state over the rest,
// plus bonuses for career and stream fit.
func examRelevance(e EntranceExam, profile types.StudentProfile) float64 {
	var score float64
	switch e.Type {
	case "national":
		score += 30
	case "state":
		score += 20
	default:
		score += 10
	}

	for _, career := range profile.CareerAspirations {
		if anyContains(e.ApplicableFor.Courses, strings.ToLower(career)) {
			score += 25
			break
		}
	}

	stream := strings.ToLower(profile.Stream)
	for _, s := range e.ApplicableFor.Streams {
		if strings.Contains(strings.ToLower(s), stream) {
			score += 20
			break
		}
	}

	return score
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// anyContains reports whether any candidate contains the value or the value
// contains the candidate, case-insensitively.
func anyContains(candidates []string, value string) bool {
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if strings.Contains(lc, value) || strings.Contains(value, lc) {
			return true
		}
	}
	return false
}
