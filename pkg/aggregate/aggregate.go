// Package aggregate consolidates membership facts into one immutable
// record per person, with resolved names and temporal status attached.
package aggregate

import (
	"context"
	"sort"

	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/names"
	"github.com/tagus/canto-bench/pkg/statements"
)

// Organization is one membership entry in a person record
type Organization struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	LocalizedName  string `json:"localized_name,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	IsCurrent      bool   `json:"is_current"`
}

// PersonRecord is the consolidated output for one person. Records are
// built once by Aggregate and never mutated afterwards; downstream
// stages only read them.
type PersonRecord struct {
	PersonID      string         `json:"person_id"`
	DisplayName   string         `json:"display_name"`
	LocalizedName string         `json:"localized_name,omitempty"`
	Organizations []Organization `json:"organizations"`
}

// Aggregate groups membership facts by person and attaches names.
//
// Persons whose own display name cannot be resolved are skipped and
// logged. A person with zero usable organizations is still emitted with
// an empty list. Organization entries are deduplicated on the
// (organization, start, end) triple and sorted by start date ascending
// with unknown starts last, keeping their encounter order. Output is
// sorted by person ID so repeated runs produce identical bytes.
func Aggregate(
	ctx context.Context,
	personIDs []string,
	facts []statements.MembershipFact,
	displayNames map[string]string,
	localized map[string]names.Resolution,
	logger logging.Logger,
) []PersonRecord {
	factsByPerson := make(map[string][]statements.MembershipFact)
	order := make([]string, 0, len(personIDs))
	seen := make(map[string]bool)

	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, id := range personIDs {
		add(id)
	}
	for _, fact := range facts {
		add(fact.PersonID)
		factsByPerson[fact.PersonID] = append(factsByPerson[fact.PersonID], fact)
	}

	records := make([]PersonRecord, 0, len(order))
	for _, personID := range order {
		displayName, ok := displayNames[personID]
		if !ok || displayName == "" {
			logger.Warn(ctx, "Skipping person without resolvable display name", map[string]interface{}{
				"person_id": personID,
			})
			continue
		}

		record := PersonRecord{
			PersonID:      personID,
			DisplayName:   displayName,
			Organizations: []Organization{},
		}
		if resolution, ok := localized[personID]; ok {
			record.LocalizedName = resolution.Name
		}

		type key struct{ org, start, end string }
		emitted := make(map[key]bool)
		for _, fact := range factsByPerson[personID] {
			k := key{fact.OrgID, fact.Start, fact.End}
			if emitted[k] {
				continue
			}
			emitted[k] = true

			orgName, ok := displayNames[fact.OrgID]
			if !ok || orgName == "" {
				logger.Warn(ctx, "Dropping membership without resolvable organization name", map[string]interface{}{
					"person_id":       personID,
					"organization_id": fact.OrgID,
				})
				continue
			}

			org := Organization{
				OrganizationID: fact.OrgID,
				Name:           orgName,
				StartDate:      fact.Start,
				EndDate:        fact.End,
				IsCurrent:      fact.Current,
			}
			if resolution, ok := localized[fact.OrgID]; ok {
				org.LocalizedName = resolution.Name
			}
			record.Organizations = append(record.Organizations, org)
		}

		sortOrganizations(record.Organizations)
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PersonID < records[j].PersonID
	})
	return records
}

// sortOrganizations orders entries by start date ascending. Entries with
// an unknown start sort last and keep their encounter order.
func sortOrganizations(orgs []Organization) {
	sort.SliceStable(orgs, func(i, j int) bool {
		ti, okI := statements.ParseDate(orgs[i].StartDate)
		tj, okJ := statements.ParseDate(orgs[j].StartDate)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})
}
