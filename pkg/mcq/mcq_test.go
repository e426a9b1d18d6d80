package mcq

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceChoices_TracksCorrectLetter(t *testing.T) {
	correct := bilingual{en: "right", zh: "啱"}
	distractors := []bilingual{
		{en: "wrong1", zh: "錯一"},
		{en: "wrong2", zh: "錯二"},
		{en: "wrong3", zh: "錯三"},
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		en, zh, letter := placeChoices(rng, correct, distractors)

		byLetter := map[string][2]string{
			"A": {en.A, zh.A}, "B": {en.B, zh.B}, "C": {en.C, zh.C}, "D": {en.D, zh.D},
		}
		assert.Equal(t, "right", byLetter[letter][0])
		assert.Equal(t, "啱", byLetter[letter][1])
	}
}

func TestPlaceChoices_Deterministic(t *testing.T) {
	correct := bilingual{en: "right", zh: "啱"}
	distractors := []bilingual{{en: "w1"}, {en: "w2"}, {en: "w3"}}

	en1, _, letter1 := placeChoices(rand.New(rand.NewSource(42)), correct, distractors)
	en2, _, letter2 := placeChoices(rand.New(rand.NewSource(42)), correct, distractors)

	assert.Equal(t, en1, en2)
	assert.Equal(t, letter1, letter2)
}

func TestYearDistractors(t *testing.T) {
	distribution := map[int]int{1985: 3, 1987: 1, 1990: 2, 2005: 1}

	years := yearDistractors(1986, distribution, 3, 1970, 2010)
	require.Len(t, years, 3)

	// Nearby years beat distant ones
	assert.Contains(t, years, 1985)
	assert.Contains(t, years, 1987)
	assert.NotContains(t, years, 1986)
	assert.NotContains(t, years, 2005)
}

func TestYearDistractors_SynthesizesNearbyYears(t *testing.T) {
	distribution := map[int]int{1987: 5}

	years := yearDistractors(1987, distribution, 3, 1970, 2010)
	require.Len(t, years, 3)
	for _, year := range years {
		assert.NotEqual(t, 1987, year)
		assert.GreaterOrEqual(t, year, 1970)
		assert.LessOrEqual(t, year, 2010)
	}
}

func TestYearDistractors_Deterministic(t *testing.T) {
	distribution := map[int]int{1984: 1, 1985: 1, 1986: 1, 1988: 1, 1989: 1}

	first := yearDistractors(1987, distribution, 3, 1970, 2010)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, yearDistractors(1987, distribution, 3, 1970, 2010))
	}
}

func TestNewDataset(t *testing.T) {
	questions := []Question{{ID: "q1"}, {ID: "q2"}}
	generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	dataset := NewDataset("test questions", QuestionTypeBirthYear, questions, generatedAt)

	assert.Equal(t, 2, dataset.Metadata.TotalQuestions)
	assert.Equal(t, QuestionTypeBirthYear, dataset.Metadata.QuestionType)
	assert.Equal(t, "2025-06-01T12:00:00Z", dataset.Metadata.GenerationDate)
}

func TestQuestionID_Stable(t *testing.T) {
	a := questionID(QuestionTypeBirthYear, "Q1001")
	b := questionID(QuestionTypeBirthYear, "Q1001")
	c := questionID(QuestionTypeTeamAffiliation, "Q1001")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
