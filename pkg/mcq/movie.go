package mcq

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
)

// QuestionTypeMovieReleaseYear labels movie release-year questions
const QuestionTypeMovieReleaseYear = "movie_release_year"

// Release-year distractors span the catalogue the translation table
// covers, from classic Hong Kong cinema to current releases.
const (
	releaseYearMin = 1950
	releaseYearMax = 2025
)

// Movie is one film with a resolved bilingual title and release year
type Movie struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cantonese   string `json:"name_cantonese"`
	ReleaseYear int    `json:"release_year"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// GenerateMovieReleaseYears builds questions asking what year a movie
// was released. Movies without a Cantonese title or release year are
// skipped; distractors come from the release years across the catalogue.
func GenerateMovieReleaseYears(rng *rand.Rand, movies []Movie, templates *Templates, limit int) []Question {
	distribution := make(map[int]int, len(movies))
	for _, movie := range movies {
		if movie.ReleaseYear > 0 {
			distribution[movie.ReleaseYear]++
		}
	}

	ordered := make([]Movie, len(movies))
	copy(ordered, movies)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var questions []Question
	for _, movie := range ordered {
		if limit > 0 && len(questions) >= limit {
			break
		}
		if movie.ReleaseYear == 0 || movie.Cantonese == "" {
			continue
		}

		distractorYears := yearDistractors(movie.ReleaseYear, distribution, 3, releaseYearMin, releaseYearMax)
		if len(distractorYears) < 3 {
			continue
		}

		correct := yearOption(movie.ReleaseYear)
		distractors := make([]bilingual, 0, 3)
		distractorNames := make([]string, 0, 3)
		for _, dy := range distractorYears {
			distractors = append(distractors, yearOption(dy))
			distractorNames = append(distractorNames, strconv.Itoa(dy))
		}

		choicesEN, choicesZH, correctLetter := placeChoices(rng, correct, distractors)

		questions = append(questions, Question{
			ID:                questionID(QuestionTypeMovieReleaseYear, movie.ID),
			QuestionType:      QuestionTypeMovieReleaseYear,
			Question:          fmt.Sprintf(templates.MovieReleaseYear.Question, movie.Name),
			QuestionCantonese: fmt.Sprintf(templates.MovieReleaseYear.QuestionCantonese, movie.Cantonese),
			Choices:           choicesEN,
			ChoicesCantonese:  choicesZH,
			CorrectAnswer:     correctLetter,
			Distractors:       distractorNames,
			Metadata: map[string]interface{}{
				"movie_id":       movie.ID,
				"movie_name":     movie.Name,
				"name_cantonese": movie.Cantonese,
				"release_year":   movie.ReleaseYear,
				"release_date":   movie.ReleaseDate,
			},
		})
	}

	return questions
}
