// Package mcq generates bilingual multiple-choice question datasets
// from aggregated person records and derived relations.
package mcq

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Choices holds the four answer options keyed by letter
type Choices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question is one bilingual multiple-choice question
type Question struct {
	ID                string                 `json:"id"`
	QuestionType      string                 `json:"question_type"`
	Question          string                 `json:"question"`
	QuestionCantonese string                 `json:"question_cantonese"`
	Choices           Choices                `json:"choices"`
	ChoicesCantonese  Choices                `json:"choices_cantonese"`
	CorrectAnswer     string                 `json:"correct_answer"`
	Distractors       []string               `json:"distractors"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

// DatasetMetadata describes a generated question file
type DatasetMetadata struct {
	Description    string `json:"description"`
	QuestionType   string `json:"question_type"`
	TotalQuestions int    `json:"total_questions"`
	GenerationDate string `json:"generation_date"`
	Format         string `json:"format"`
}

// Dataset is the output envelope for one question type
type Dataset struct {
	Metadata  DatasetMetadata `json:"metadata"`
	Questions []Question      `json:"questions"`
}

// NewDataset wraps questions in the standard metadata envelope. The
// caller supplies the generation time so repeated runs can produce
// identical files.
func NewDataset(description, questionType string, questions []Question, generatedAt time.Time) Dataset {
	return Dataset{
		Metadata: DatasetMetadata{
			Description:    description,
			QuestionType:   questionType,
			TotalQuestions: len(questions),
			GenerationDate: generatedAt.UTC().Format(time.RFC3339),
			Format:         "Four choices (A, B, C, D) with one correct answer",
		},
		Questions: questions,
	}
}

var letters = [4]string{"A", "B", "C", "D"}

// questionID derives a stable UUID from the question type and subject so
// regenerating the same dataset yields identical IDs.
func questionID(questionType, subject string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(questionType+":"+subject)).String()
}

// bilingual is one answer option in both languages
type bilingual struct {
	en string
	zh string
}

// placeChoices shuffles the correct answer among the distractors and
// returns the filled letter slots plus the correct letter.
func placeChoices(rng *rand.Rand, correct bilingual, distractors []bilingual) (Choices, Choices, string) {
	options := make([]bilingual, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	correctIdx := 0
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		switch correctIdx {
		case i:
			correctIdx = j
		case j:
			correctIdx = i
		}
	})

	var en, zh Choices
	for i, option := range options {
		switch letters[i] {
		case "A":
			en.A, zh.A = option.en, option.zh
		case "B":
			en.B, zh.B = option.en, option.zh
		case "C":
			en.C, zh.C = option.en, option.zh
		case "D":
			en.D, zh.D = option.en, option.zh
		}
	}
	return en, zh, letters[correctIdx]
}
