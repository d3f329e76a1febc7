package eligibility

import (
	"testing"

	"github.com/aura/counsel/internal/types"
	"github.com/stretchr/testify/assert"
)

func uni(exams []string, minPercentile string) types.University {
	return types.University{
		ID:                    "u1",
		Name:                  "Test Institute",
		ExamsAccepted:         exams,
		MinPercentileRequired: minPercentile,
	}
}

func TestMeetsEntranceRequirements_NoBarrier(t *testing.T) {
	p := types.AcademicProfile{TwelfthPercentage: 70}

	assert.True(t, MeetsEntranceRequirements(uni(nil, "90"), p), "no accepted exams means no barrier")
	assert.True(t, MeetsEntranceRequirements(uni([]string{"JEE Main"}, ""), p), "no cutoff means no barrier")
}

func TestMeetsEntranceRequirements_PriorityOrder(t *testing.T) {
	// Accepts both JEE Advanced and CUET with cutoff 90. The student's CUET
	// score would qualify on its own, but Advanced is the higher-priority
	// exam and the student never sat it, so the dispatch stops there.
	u := uni([]string{"JEE Advanced", "CUET"}, "90")
	p := types.AcademicProfile{CUETScore: 99}

	assert.False(t, MeetsEntranceRequirements(u, p))

	// With a qualifying Advanced score the same university passes.
	p.JEEAdvancedScore = 95
	assert.True(t, MeetsEntranceRequirements(u, p))

	// And an Advanced score below cutoff fails even though CUET qualifies.
	p.JEEAdvancedScore = 80
	assert.False(t, MeetsEntranceRequirements(u, p))
}

func TestMeetsEntranceRequirements_ZeroScoreDisqualifies(t *testing.T) {
	p := types.AcademicProfile{JEEAdvancedScore: 0}

	assert.False(t, MeetsEntranceRequirements(uni([]string{"JEE Advanced"}, "90"), p))
	// Even a cutoff of "0" cannot rescue an unattempted exam.
	assert.False(t, MeetsEntranceRequirements(uni([]string{"JEE Advanced"}, "0"), p))
}

func TestMeetsEntranceRequirements_PerExamDispatch(t *testing.T) {
	tests := []struct {
		name    string
		exams   []string
		profile types.AcademicProfile
		want    bool
	}{
		{
			name:    "jee mains pass",
			exams:   []string{"JEE Mains"},
			profile: types.AcademicProfile{JEEMainsScore: 85},
			want:    true,
		},
		{
			name:    "jee main singular spelling",
			exams:   []string{"JEE Main"},
			profile: types.AcademicProfile{JEEMainsScore: 85},
			want:    true,
		},
		{
			name:    "jee mains below cutoff",
			exams:   []string{"JEE Mains"},
			profile: types.AcademicProfile{JEEMainsScore: 72},
			want:    false,
		},
		{
			name:    "neet pass",
			exams:   []string{"NEET"},
			profile: types.AcademicProfile{NEETScore: 91},
			want:    true,
		},
		{
			name:    "neet not attempted",
			exams:   []string{"NEET"},
			profile: types.AcademicProfile{JEEMainsScore: 99},
			want:    false,
		},
		{
			name:    "cuet pass",
			exams:   []string{"CUET"},
			profile: types.AcademicProfile{CUETScore: 80},
			want:    true,
		},
		{
			name:    "unrecognized exam is permissive",
			exams:   []string{"BITSAT"},
			profile: types.AcademicProfile{},
			want:    true,
		},
		{
			name:    "case insensitive exam names",
			exams:   []string{"jee ADVANCED"},
			profile: types.AcademicProfile{JEEAdvancedScore: 95},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeetsEntranceRequirements(uni(tt.exams, "80"), tt.profile)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		name        string
		percentage  float64
		minRequired float64
		want        types.EligibilityStatus
	}{
		{name: "well above minimum", percentage: 90, minRequired: 75, want: types.StatusEligible},
		{name: "exactly plus ten", percentage: 85, minRequired: 75, want: types.StatusEligible},
		{name: "inside tolerance above", percentage: 80, minRequired: 75, want: types.StatusBorderline},
		{name: "inside tolerance below", percentage: 70, minRequired: 75, want: types.StatusBorderline},
		{name: "below tolerance", percentage: 69, minRequired: 75, want: types.StatusNotEligible},
		{name: "unparseable sentinel", percentage: -1, minRequired: 75, want: types.StatusBorderline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Band(tt.percentage, tt.minRequired))
		})
	}
}
