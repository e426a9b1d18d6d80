// Package statements extracts team-membership facts from entity
// documents and classifies them as current or past.
package statements

import (
	"context"
	"strings"

	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/wikidata"
)

// MembershipFact is one team membership extracted from a person's
// statement graph. Start and End are ISO-8601 strings, empty when the
// boundary is unknown.
type MembershipFact struct {
	PersonID string `json:"person_id"`
	OrgID    string `json:"organization_id"`
	Start    string `json:"start_date,omitempty"`
	End      string `json:"end_date,omitempty"`
	Current  bool   `json:"is_current"`
}

// statementValue normalizes a qualifier value. Wikidata serializes an
// unbounded end date as a blank node reference instead of omitting it,
// so a node-shaped value with a "_:" id means the boundary is open.
func statementValue(raw interface{}) (value string, open bool) {
	switch typed := raw.(type) {
	case string:
		return typed, false
	case map[string]interface{}:
		if id, ok := typed["@id"].(string); ok && strings.HasPrefix(id, "_:") {
			return "", true
		}
	}
	return "", false
}

// objectIDs returns the entity IDs a statement value points at, handling
// both the single-reference and array forms.
func objectIDs(raw interface{}) []string {
	var ids []string
	add := func(item interface{}) {
		switch typed := item.(type) {
		case string:
			if strings.HasPrefix(typed, "wd:") {
				ids = append(ids, strings.TrimPrefix(typed, "wd:"))
			}
		case map[string]interface{}:
			if id, ok := typed["@id"].(string); ok && strings.HasPrefix(id, "wd:") {
				ids = append(ids, strings.TrimPrefix(id, "wd:"))
			}
		}
	}

	if list, ok := raw.([]interface{}); ok {
		for _, item := range list {
			add(item)
		}
	} else {
		add(raw)
	}
	return ids
}

// Extract collects the membership facts in a person's entity document.
// Statement nodes whose team reference cannot be resolved are skipped
// and logged rather than failing the document.
func Extract(ctx context.Context, doc *wikidata.Document, personID string, logger logging.Logger) []MembershipFact {
	var facts []MembershipFact

	for _, node := range doc.Graph {
		if !node.HasType("wikibase:Statement") {
			continue
		}
		raw, ok := node.Raw("ps:" + wikidata.PropMemberOfTeam)
		if !ok {
			continue
		}

		orgIDs := objectIDs(raw)
		if len(orgIDs) == 0 {
			logger.Debug(ctx, "Skipping membership statement without team reference", map[string]interface{}{
				"person_id":    personID,
				"statement_id": node.ID(),
			})
			continue
		}

		start, _ := statementValue(mustRaw(node, wikidata.PropStartTime))
		end, endOpen := statementValue(mustRaw(node, wikidata.PropEndTime))

		for _, orgID := range orgIDs {
			facts = append(facts, MembershipFact{
				PersonID: personID,
				OrgID:    orgID,
				Start:    start,
				End:      end,
				Current:  IsCurrent(end, endOpen),
			})
		}
	}

	return facts
}

func mustRaw(node wikidata.Node, key string) interface{} {
	raw, _ := node.Raw(key)
	return raw
}

// IsCurrent classifies a membership as ongoing. A membership is current
// when the end date is absent or recorded as an unbounded placeholder.
func IsCurrent(end string, endOpen bool) bool {
	return end == "" || endOpen
}
