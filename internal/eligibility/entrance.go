// Package eligibility decides whether a student clears a university's
// entrance-exam barrier and bands their academic fit.
package eligibility

import (
	"strings"

	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/types"
)

// entranceRule pairs an exam-name predicate with the profile score it gates
// on. Rules are dispatched in a fixed priority order: the first rule whose
// predicate matches any accepted exam is the only rule applied, even when the
// university also lists a lower-priority exam the student did take. That is
// how JEE-Advanced institutions are evaluated strictly on Advanced even when
// they nominally accept Mains or CUET too — an ordered tie-break, not a
// set-of-OR conditions.
type entranceRule struct {
	matches func(exam string) bool
	score   func(p types.AcademicProfile) float64
}

func examContains(substrings ...string) func(string) bool {
	return func(exam string) bool {
		for _, sub := range substrings {
			if strings.Contains(exam, sub) {
				return true
			}
		}
		return false
	}
}

// entranceRules is evaluated top to bottom. Order matters and is part of the
// contract; see the package tests pinning the JEE Advanced + CUET case.
var entranceRules = []entranceRule{
	{examContains("jee advanced"), func(p types.AcademicProfile) float64 { return p.JEEAdvancedScore }},
	{examContains("jee main", "jee mains"), func(p types.AcademicProfile) float64 { return p.JEEMainsScore }},
	{examContains("neet"), func(p types.AcademicProfile) float64 { return p.NEETScore }},
	{examContains("cuet"), func(p types.AcademicProfile) float64 { return p.CUETScore }},
}

// MeetsEntranceRequirements reports whether the student clears the
// university's entrance-exam requirement.
//
// A university with no accepted-exam list or no percentile cutoff imposes no
// barrier. Otherwise the highest-priority recognized exam decides: the student
// must have attempted it (score > 0) and scored at or above the cutoff. A zero
// score means "did not sit the exam" and disqualifies even when the cutoff
// parses to 0. Universities accepting only unrecognized exams are permissive.
func MeetsEntranceRequirements(u types.University, p types.AcademicProfile) bool {
	if len(u.ExamsAccepted) == 0 || u.MinPercentileRequired == "" {
		return true
	}

	accepted := make([]string, 0, len(u.ExamsAccepted))
	for _, exam := range u.ExamsAccepted {
		accepted = append(accepted, strings.ToLower(exam))
	}
	minPercentile := float64(parsing.ParseScore(u.MinPercentileRequired))

	for _, rule := range entranceRules {
		if !anyExam(accepted, rule.matches) {
			continue
		}
		score := rule.score(p)
		if score == 0 {
			return false
		}
		return score >= minPercentile
	}

	// Unrecognized exams: assume the student can still sit them.
	return true
}

func anyExam(exams []string, pred func(string) bool) bool {
	for _, exam := range exams {
		if pred(exam) {
			return true
		}
	}
	return false
}
