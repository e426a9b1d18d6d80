package mcq

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/tagus/canto-bench/pkg/aggregate"
	"github.com/tagus/canto-bench/pkg/relations"
)

// QuestionTypeTeamAffiliation labels player-club affiliation questions
const QuestionTypeTeamAffiliation = "player_team_affiliation"

// minDistractorClubPlayers is how many distinct players a club needs
// before it can serve as a distractor.
const minDistractorClubPlayers = 2

type clubOption struct {
	id          string
	name        string
	localized   string
	playerCount int
}

// localizedOr falls back to the display name when no Cantonese name
// resolved, mirroring how every question type degrades.
func localizedOr(localized, display string) string {
	if localized != "" {
		return localized
	}
	return display
}

// GenerateTeamAffiliation builds one question per eligible player asking
// which club they have played for. National and youth squads are
// excluded from both answers and distractors. Players without enough
// viable distractor clubs are skipped.
func GenerateTeamAffiliation(rng *rand.Rand, records []aggregate.PersonRecord, templates *Templates, limit int) []Question {
	popular := popularClubs(records)

	var questions []Question
	for _, record := range records {
		if limit > 0 && len(questions) >= limit {
			break
		}

		clubs := relations.ClubsOnly(record.Organizations)
		if len(clubs) == 0 {
			continue
		}

		correct := clubs[rng.Intn(len(clubs))]
		playerClubIDs := make(map[string]bool, len(clubs))
		for _, club := range clubs {
			playerClubIDs[club.OrganizationID] = true
		}

		var pool []clubOption
		for _, club := range popular {
			if playerClubIDs[club.id] || club.name == correct.Name {
				continue
			}
			pool = append(pool, club)
		}
		if len(pool) < 3 {
			continue
		}

		distractorClubs := samplePool(rng, pool, 3)
		distractors := make([]bilingual, 0, 3)
		distractorNames := make([]string, 0, 3)
		for _, club := range distractorClubs {
			distractors = append(distractors, bilingual{
				en: club.name,
				zh: localizedOr(club.localized, club.name),
			})
			distractorNames = append(distractorNames, club.name)
		}

		correctOption := bilingual{
			en: correct.Name,
			zh: localizedOr(correct.LocalizedName, correct.Name),
		}
		choicesEN, choicesZH, correctLetter := placeChoices(rng, correctOption, distractors)

		questions = append(questions, Question{
			ID:                questionID(QuestionTypeTeamAffiliation, record.PersonID),
			QuestionType:      QuestionTypeTeamAffiliation,
			Question:          fmt.Sprintf(templates.TeamAffiliation.Question, record.DisplayName),
			QuestionCantonese: fmt.Sprintf(templates.TeamAffiliation.QuestionCantonese, localizedOr(record.LocalizedName, record.DisplayName)),
			Choices:           choicesEN,
			ChoicesCantonese:  choicesZH,
			CorrectAnswer:     correctLetter,
			Distractors:       distractorNames,
			Metadata: map[string]interface{}{
				"player_id":       record.PersonID,
				"player_name":     record.DisplayName,
				"club_id":         correct.OrganizationID,
				"club_name":       correct.Name,
				"club_is_current": correct.IsCurrent,
				"total_clubs":     len(clubs),
			},
		})
	}

	return questions
}

// popularClubs returns clubs with enough distinct players to serve as
// distractors, sorted by club ID for run-to-run stability.
func popularClubs(records []aggregate.PersonRecord) []clubOption {
	type clubStat struct {
		name      string
		localized string
		players   map[string]bool
	}
	stats := make(map[string]*clubStat)

	for _, record := range records {
		for _, club := range relations.ClubsOnly(record.Organizations) {
			stat := stats[club.OrganizationID]
			if stat == nil {
				stat = &clubStat{name: club.Name, localized: club.LocalizedName, players: make(map[string]bool)}
				stats[club.OrganizationID] = stat
			}
			stat.players[record.PersonID] = true
		}
	}

	var clubs []clubOption
	for id, stat := range stats {
		if len(stat.players) < minDistractorClubPlayers {
			continue
		}
		clubs = append(clubs, clubOption{
			id:          id,
			name:        stat.name,
			localized:   stat.localized,
			playerCount: len(stat.players),
		})
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].id < clubs[j].id })
	return clubs
}

// samplePool draws n distinct elements using a seeded permutation
func samplePool(rng *rand.Rand, pool []clubOption, n int) []clubOption {
	perm := rng.Perm(len(pool))
	sampled := make([]clubOption, 0, n)
	for _, idx := range perm[:n] {
		sampled = append(sampled, pool[idx])
	}
	return sampled
}
