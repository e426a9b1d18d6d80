package mcq

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/tagus/canto-bench/pkg/aggregate"
	"github.com/tagus/canto-bench/pkg/relations"
	"github.com/tagus/canto-bench/pkg/statements"
)

// QuestionTypeDebutYear labels national-team debut-year questions
const QuestionTypeDebutYear = "player_national_team_debut_year"

// Debut-year distractors stay inside the era of organized international
// football covered by the dataset.
const (
	debutYearMin = 1980
	debutYearMax = 2025
)

// seniorDebut finds a player's earliest senior national-team stint with
// a known start year. Stints are ordered by start date already, so the
// first dated squad wins ties deterministically.
func seniorDebut(record aggregate.PersonRecord) (aggregate.Organization, int, int, bool) {
	squads := relations.SeniorNationalSquads(record.Organizations)

	var debut aggregate.Organization
	debutYear := 0
	for _, org := range squads {
		year, ok := statements.YearOf(org.StartDate)
		if !ok {
			continue
		}
		if debutYear == 0 || year < debutYear {
			debut, debutYear = org, year
		}
	}
	return debut, debutYear, len(squads), debutYear != 0
}

// GenerateDebutYears builds questions asking what year a player first
// represented a senior national team. Youth squads never count as a
// debut; distractors come from the debut years observed across the
// dataset.
func GenerateDebutYears(rng *rand.Rand, records []aggregate.PersonRecord, templates *Templates, limit int) []Question {
	distribution := make(map[int]int)
	for _, record := range records {
		if _, year, _, ok := seniorDebut(record); ok {
			distribution[year]++
		}
	}

	var questions []Question
	for _, record := range records {
		if limit > 0 && len(questions) >= limit {
			break
		}

		squad, year, totalSquads, ok := seniorDebut(record)
		if !ok {
			continue
		}

		distractorYears := yearDistractors(year, distribution, 3, debutYearMin, debutYearMax)
		if len(distractorYears) < 3 {
			continue
		}

		correct := yearOption(year)
		distractors := make([]bilingual, 0, 3)
		distractorNames := make([]string, 0, 3)
		for _, dy := range distractorYears {
			distractors = append(distractors, yearOption(dy))
			distractorNames = append(distractorNames, strconv.Itoa(dy))
		}

		choicesEN, choicesZH, correctLetter := placeChoices(rng, correct, distractors)

		questions = append(questions, Question{
			ID:                questionID(QuestionTypeDebutYear, record.PersonID),
			QuestionType:      QuestionTypeDebutYear,
			Question:          fmt.Sprintf(templates.DebutYear.Question, record.DisplayName),
			QuestionCantonese: fmt.Sprintf(templates.DebutYear.QuestionCantonese, localizedOr(record.LocalizedName, record.DisplayName)),
			Choices:           choicesEN,
			ChoicesCantonese:  choicesZH,
			CorrectAnswer:     correctLetter,
			Distractors:       distractorNames,
			Metadata: map[string]interface{}{
				"player_id":            record.PersonID,
				"player_name":          record.DisplayName,
				"debut_year":           year,
				"team_id":              squad.OrganizationID,
				"team_name":            squad.Name,
				"team_is_current":      squad.IsCurrent,
				"total_national_teams": totalSquads,
			},
		})
	}

	return questions
}
