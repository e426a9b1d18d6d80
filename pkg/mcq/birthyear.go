package mcq

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/tagus/canto-bench/pkg/aggregate"
)

// QuestionTypeBirthYear labels player birth-year questions
const QuestionTypeBirthYear = "player_birth_year"

// Birth-year distractors stay inside the plausible range for active and
// recently retired players.
const (
	birthYearMin = 1970
	birthYearMax = 2010
)

// GenerateBirthYears builds questions asking what year a player was
// born. Distractors are drawn from the birth years observed across the
// whole dataset, preferring years close to the correct one.
func GenerateBirthYears(rng *rand.Rand, records []aggregate.PersonRecord, birthYears map[string]int, templates *Templates, limit int) []Question {
	distribution := make(map[int]int, len(birthYears))
	for _, year := range birthYears {
		distribution[year]++
	}

	var questions []Question
	for _, record := range records {
		if limit > 0 && len(questions) >= limit {
			break
		}

		year, ok := birthYears[record.PersonID]
		if !ok {
			continue
		}

		distractorYears := yearDistractors(year, distribution, 3, birthYearMin, birthYearMax)
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
			ID:                questionID(QuestionTypeBirthYear, record.PersonID),
			QuestionType:      QuestionTypeBirthYear,
			Question:          fmt.Sprintf(templates.BirthYear.Question, record.DisplayName),
			QuestionCantonese: fmt.Sprintf(templates.BirthYear.QuestionCantonese, localizedOr(record.LocalizedName, record.DisplayName)),
			Choices:           choicesEN,
			ChoicesCantonese:  choicesZH,
			CorrectAnswer:     correctLetter,
			Distractors:       distractorNames,
			Metadata: map[string]interface{}{
				"player_id":   record.PersonID,
				"player_name": record.DisplayName,
				"birth_year":  year,
			},
		})
	}

	return questions
}

// yearOption renders a year choice in both languages
func yearOption(year int) bilingual {
	return bilingual{
		en: strconv.Itoa(year),
		zh: fmt.Sprintf("%d年", year),
	}
}
