package wikidata

// Wikidata property and entity IDs used by the pipeline
const (
	PropInstanceOf   = "P31"
	PropOccupation   = "P106"
	PropSport        = "P641"
	PropMemberOfTeam = "P54"
	PropDateOfBirth  = "P569"
	PropStartTime    = "P580"
	PropEndTime      = "P582"
	PropPublication  = "P577"

	EntityHuman          = "Q5"
	EntityFootballPlayer = "Q937857"
	EntityFootball       = "Q2736"
)

// Snak is a single property value inside a claim
type Snak struct {
	SnakType  string `json:"snaktype"`
	Property  string `json:"property"`
	DataValue struct {
		Type  string                 `json:"type"`
		Value map[string]interface{} `json:"value"`
	} `json:"datavalue"`
}

// Claim is one statement returned by the wbgetentities API
type Claim struct {
	MainSnak Snak   `json:"mainsnak"`
	Rank     string `json:"rank"`
}

// Claims maps property IDs to the claims an entity carries for them
type Claims map[string][]Claim

// ObjectID returns the Q-ID of the claim's value when it is an entity reference
func (c Claim) ObjectID() (string, bool) {
	if c.MainSnak.DataValue.Type != "wikibase-entityid" {
		return "", false
	}
	id, ok := c.MainSnak.DataValue.Value["id"].(string)
	return id, ok && id != ""
}

// ObjectIDs returns every entity Q-ID an entity's claims for a property point at
func (c Claims) ObjectIDs(property string) []string {
	var ids []string
	for _, claim := range c[property] {
		if id, ok := claim.ObjectID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasObject reports whether any claim for the property points at the target entity
func (c Claims) HasObject(property, target string) bool {
	for _, id := range c.ObjectIDs(property) {
		if id == target {
			return true
		}
	}
	return false
}

// TimeValue returns the first time value an entity's claims carry for a
// property, e.g. P577 (publication date). Wikidata time strings keep
// their leading sign ("+1994-09-10T00:00:00Z").
func (c Claims) TimeValue(property string) (string, bool) {
	for _, claim := range c[property] {
		if claim.MainSnak.DataValue.Type != "time" {
			continue
		}
		if t, ok := claim.MainSnak.DataValue.Value["time"].(string); ok && t != "" {
			return t, true
		}
	}
	return "", false
}

// IsFootballPerson reports whether the claims describe a human who is a
// football player by occupation or plays football as a sport.
func IsFootballPerson(c Claims) bool {
	if !c.HasObject(PropInstanceOf, EntityHuman) {
		return false
	}
	return c.HasObject(PropOccupation, EntityFootballPlayer) || c.HasObject(PropSport, EntityFootball)
}
