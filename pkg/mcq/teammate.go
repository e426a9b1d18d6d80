package mcq

import (
	"fmt"
	"math/rand"

	"github.com/tagus/canto-bench/pkg/aggregate"
	"github.com/tagus/canto-bench/pkg/relations"
)

// QuestionTypeTeammate labels club-teammate relationship questions
const QuestionTypeTeammate = "teammate_relationship"

type personName struct {
	display   string
	localized string
}

// GenerateTeammates builds questions asking which pair of players were
// club teammates. The correct pair comes from the derived co-membership
// pairs; distractors are random player pairs that never shared a club.
// Pairs where either player or the club lacks a Cantonese name are
// skipped so both language renderings stay fully localized.
func GenerateTeammates(rng *rand.Rand, records []aggregate.PersonRecord, pairs []relations.Pair, templates *Templates, limit int) []Question {
	personNames := make(map[string]personName, len(records))
	personIDs := make([]string, 0, len(records))
	orgNames := make(map[string]personName)
	for _, record := range records {
		personNames[record.PersonID] = personName{display: record.DisplayName, localized: record.LocalizedName}
		personIDs = append(personIDs, record.PersonID)
		for _, org := range record.Organizations {
			orgNames[org.OrganizationID] = personName{display: org.Name, localized: org.LocalizedName}
		}
	}

	teammates := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		teammates[pairKey(pair.PersonA, pair.PersonB)] = true
	}

	usedPairs := make(map[string]bool)
	var questions []Question
	for _, pair := range pairs {
		if limit > 0 && len(questions) >= limit {
			break
		}

		key := pairKey(pair.PersonA, pair.PersonB)
		if usedPairs[key] {
			continue
		}

		club := orgNames[pair.OrganizationID]
		if relations.IsNationalSquad(club.display, "") {
			continue
		}
		nameA, nameB := personNames[pair.PersonA], personNames[pair.PersonB]
		if nameA.localized == "" || nameB.localized == "" || club.localized == "" {
			continue
		}

		distractorPairs := randomNonTeammates(rng, personIDs, personNames, teammates, 3)
		if len(distractorPairs) < 3 {
			continue
		}

		correct := bilingual{
			en: fmt.Sprintf("%s and %s", nameA.display, nameB.display),
			zh: fmt.Sprintf("%s同%s", nameA.localized, nameB.localized),
		}
		distractors := make([]bilingual, 0, 3)
		distractorNames := make([]string, 0, 3)
		for _, dp := range distractorPairs {
			da, db := personNames[dp[0]], personNames[dp[1]]
			distractors = append(distractors, bilingual{
				en: fmt.Sprintf("%s and %s", da.display, db.display),
				zh: fmt.Sprintf("%s同%s", localizedOr(da.localized, da.display), localizedOr(db.localized, db.display)),
			})
			distractorNames = append(distractorNames, fmt.Sprintf("%s and %s", da.display, db.display))
		}

		choicesEN, choicesZH, correctLetter := placeChoices(rng, correct, distractors)
		usedPairs[key] = true

		questions = append(questions, Question{
			ID:                questionID(QuestionTypeTeammate, key+":"+pair.OrganizationID),
			QuestionType:      QuestionTypeTeammate,
			Question:          templates.Teammate.Question,
			QuestionCantonese: templates.Teammate.QuestionCantonese,
			Choices:           choicesEN,
			ChoicesCantonese:  choicesZH,
			CorrectAnswer:     correctLetter,
			Distractors:       distractorNames,
			Metadata: map[string]interface{}{
				"player1_id":          pair.PersonA,
				"player1_name":        nameA.display,
				"player2_id":          pair.PersonB,
				"player2_name":        nameB.display,
				"club_id":             pair.OrganizationID,
				"club_name":           club.display,
				"club_name_cantonese": club.localized,
				"overlap_start":       pair.OverlapStart,
				"overlap_end":         pair.OverlapEnd,
			},
		})
	}

	return questions
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// randomNonTeammates draws distinct player pairs that never appear in
// the teammate set. Attempts are bounded so sparse datasets terminate.
func randomNonTeammates(rng *rand.Rand, personIDs []string, personNames map[string]personName, teammates map[string]bool, count int) [][2]string {
	var result [][2]string
	chosen := make(map[string]bool)

	for attempts := 0; len(result) < count && attempts < 1000; attempts++ {
		if len(personIDs) < 2 {
			break
		}
		a := personIDs[rng.Intn(len(personIDs))]
		b := personIDs[rng.Intn(len(personIDs))]
		if a == b {
			continue
		}

		key := pairKey(a, b)
		if teammates[key] || chosen[key] {
			continue
		}
		if personNames[a].display == "" || personNames[b].display == "" {
			continue
		}

		chosen[key] = true
		result = append(result, [2]string{a, b})
	}

	return result
}
