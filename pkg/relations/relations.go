// Package relations derives co-membership pairs from aggregated person
// records and classifies organizations as clubs or national squads.
package relations

import (
	"sort"
	"strings"

	"github.com/tagus/canto-bench/pkg/aggregate"
	"github.com/tagus/canto-bench/pkg/statements"
)

// Pair records two persons who were at the same organization during an
// overlapping time window. The same person pair appears once per shared
// organization; callers needing person-level uniqueness deduplicate on
// (PersonA, PersonB) themselves.
type Pair struct {
	PersonA        string `json:"person_a"`
	PersonB        string `json:"person_b"`
	OrganizationID string `json:"organization_id"`
	OverlapStart   string `json:"overlap_start,omitempty"`
	OverlapEnd     string `json:"overlap_end,omitempty"`
}

// Overlap reports whether two membership windows intersect. An unknown
// boundary is treated as unbounded, so missing data errs toward overlap.
func Overlap(startA, endA, startB, endB string) bool {
	return !strictlyBefore(endA, startB) && !strictlyBefore(endB, startA)
}

// strictlyBefore reports a < b with both values known
func strictlyBefore(a, b string) bool {
	return statements.Before(a, b)
}

type stint struct {
	person string
	org    aggregate.Organization
}

// Derive emits one Pair per unordered person pair and shared organization
// with a confirmed overlap. Output order is deterministic: organizations
// ascending, then person pairs in record order. Quadratic in the number
// of persons per organization, which stays small for real squads.
func Derive(records []aggregate.PersonRecord) []Pair {
	byOrg := make(map[string][]stint)
	for _, record := range records {
		for _, org := range record.Organizations {
			byOrg[org.OrganizationID] = append(byOrg[org.OrganizationID], stint{
				person: record.PersonID,
				org:    org,
			})
		}
	}

	orgIDs := make([]string, 0, len(byOrg))
	for orgID := range byOrg {
		orgIDs = append(orgIDs, orgID)
	}
	sort.Strings(orgIDs)

	var pairs []Pair
	for _, orgID := range orgIDs {
		members := byOrg[orgID]
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if a.person == b.person {
					continue
				}
				if !Overlap(a.org.StartDate, a.org.EndDate, b.org.StartDate, b.org.EndDate) {
					continue
				}

				pair := Pair{
					PersonA:        a.person,
					PersonB:        b.person,
					OrganizationID: orgID,
					OverlapStart:   laterDate(a.org.StartDate, b.org.StartDate),
					OverlapEnd:     earlierDate(a.org.EndDate, b.org.EndDate),
				}
				if pair.PersonA > pair.PersonB {
					pair.PersonA, pair.PersonB = pair.PersonB, pair.PersonA
				}
				pairs = append(pairs, pair)
			}
		}
	}

	return pairs
}

// laterDate returns the later of two start dates, ignoring unknowns
func laterDate(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if statements.Before(a, b) {
		return b
	}
	return a
}

// earlierDate returns the earlier of two end dates, ignoring unknowns
func earlierDate(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if statements.Before(a, b) {
		return a
	}
	return b
}

// squadKeywords flag representative sides and age-group teams as opposed
// to clubs. Matched against lowercased names and descriptions.
var squadKeywords = []string{"national", "under-", "u-", "youth"}

// IsNationalSquad reports whether an organization name or description
// describes a national or youth representative side rather than a club.
func IsNationalSquad(name, description string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range squadKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	lowered = strings.ToLower(description)
	for _, keyword := range []string{"national", "under-", "youth"} {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// ClubsOnly filters a person's organizations down to club sides
func ClubsOnly(orgs []aggregate.Organization) []aggregate.Organization {
	var clubs []aggregate.Organization
	for _, org := range orgs {
		if !IsNationalSquad(org.Name, "") {
			clubs = append(clubs, org)
		}
	}
	return clubs
}

// youthKeywords mark age-group representative sides
var youthKeywords = []string{"under-", "u-", "youth"}

// IsYouthSquad reports an age-group side like an under-21 or youth team
func IsYouthSquad(name, description string) bool {
	for _, text := range []string{name, description} {
		lowered := strings.ToLower(text)
		for _, keyword := range youthKeywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}
	return false
}

// SeniorNationalSquads filters a person's organizations down to senior
// national sides, excluding both clubs and age-group teams.
func SeniorNationalSquads(orgs []aggregate.Organization) []aggregate.Organization {
	var squads []aggregate.Organization
	for _, org := range orgs {
		if IsNationalSquad(org.Name, "") && !IsYouthSquad(org.Name, "") {
			squads = append(squads, org)
		}
	}
	return squads
}
