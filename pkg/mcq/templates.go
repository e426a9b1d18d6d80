package mcq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Template holds the bilingual phrasing for one question type. The
// question strings are Printf formats taking the subject name, except
// the teammate question which is fixed text.
type Template struct {
	Question          string `yaml:"question"`
	QuestionCantonese string `yaml:"question_cantonese"`
}

// Templates collects the phrasing for every question type
type Templates struct {
	TeamAffiliation  Template `yaml:"team_affiliation"`
	Teammate         Template `yaml:"teammate"`
	BirthYear        Template `yaml:"birth_year"`
	DebutYear        Template `yaml:"debut_year"`
	MovieReleaseYear Template `yaml:"movie_release_year"`
}

// DefaultTemplates returns the built-in phrasing
func DefaultTemplates() *Templates {
	return &Templates{
		TeamAffiliation: Template{
			Question:          "Which team has %s played for?",
			QuestionCantonese: "足球員%s效力過以下邊一隊？",
		},
		Teammate: Template{
			Question:          "Which two players below have been teammates in the same club before?",
			QuestionCantonese: "以下邊對球員曾經喺同一間球會做過隊友？",
		},
		BirthYear: Template{
			Question:          "What year was %s, the soccer player, born?",
			QuestionCantonese: "足球員%s係邊年出世？",
		},
		DebutYear: Template{
			Question:          "In which year did %s first debut for the senior national team?",
			QuestionCantonese: "%s喺邊一年首次代表成年國家隊出賽？",
		},
		MovieReleaseYear: Template{
			Question:          "What year was the movie %q released?",
			QuestionCantonese: "電影《%s》係邊年上映？",
		},
	}
}

// LoadTemplates reads a YAML template file and overlays it onto the
// defaults, so a file only needs to name the phrasings it changes.
func LoadTemplates(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	templates := DefaultTemplates()
	if err := yaml.Unmarshal(data, templates); err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}
	return templates, nil
}
