// Package evaluate scores one interview answer against a job template using
// deterministic keyword and regex rules. It is pure: same answer and template
// always produce the same result.
package evaluate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hireloop/interviewer/internal/catalog"
)

const (
	maxSkillScore      = 50
	maxExperienceScore = 30
	maxFluencyScore    = 20

	pointsPerYear = 6
	wordsPerPoint = 3
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*years`)

// Result is the outcome of scoring a single answer.
//
// FoundSkills and MissingSkills partition the template's skill list and keep
// its order, so MissingSkills[0] is always the highest-priority gap.
type Result struct {
	Score         int
	Rationale     string
	FoundSkills   []string
	MissingSkills []string
}

// Evaluate scores the answer against the job's required skills.
//
// The score is the sum of three components: skill coverage (up to 50),
// self-reported years of experience (up to 30, 6 points per year), and answer
// length as a fluency proxy (up to 20, one point per three words).
func Evaluate(answer string, job *catalog.JobTemplate) Result {
	text := strings.ToLower(answer)

	found := make([]string, 0, len(job.Skills))
	missing := make([]string, 0, len(job.Skills))
	for _, skill := range job.Skills {
		if skill != "" && strings.Contains(text, skill) {
			found = append(found, skill)
			continue
		}
		missing = append(missing, skill)
	}

	total := len(job.Skills)
	if total < 1 {
		total = 1
	}
	skillScore := int(math.Round(maxSkillScore * float64(len(found)) / float64(total)))

	// Clamp before multiplying so an absurd year count cannot overflow.
	years := extractYears(text)
	expScore := maxExperienceScore
	if years < maxExperienceScore/pointsPerYear {
		expScore = years * pointsPerYear
	}

	words := len(strings.Fields(text))
	// The clamp is applied both before and after rounding to keep exact
	// scoring parity with the reference behavior.
	fluency := math.Min(maxFluencyScore, float64(words)/wordsPerPoint)
	fluencyScore := int(math.Min(maxFluencyScore, math.Round(fluency)))

	return Result{
		Score:         skillScore + expScore + fluencyScore,
		Rationale:     rationale(found, total, words, years),
		FoundSkills:   found,
		MissingSkills: missing,
	}
}

func extractYears(text string) int {
	match := yearsPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	years, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	return years
}

func rationale(found []string, totalSkills, words, years int) string {
	skills := "none"
	if len(found) > 0 {
		skills = strings.Join(found, ", ")
	}

	experience := "n/a"
	if years > 0 {
		experience = fmt.Sprintf("%d years", years)
	}

	return fmt.Sprintf("matched %d/%d skills (%s); %d words; experience: %s",
		len(found), totalSkills, skills, words, experience)
}
