package wikidata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entityClaim(property, target string) Claim {
	claim := Claim{Rank: "normal"}
	claim.MainSnak.Property = property
	claim.MainSnak.DataValue.Type = "wikibase-entityid"
	claim.MainSnak.DataValue.Value = map[string]interface{}{"id": target}
	return claim
}

func TestClaims_ObjectIDs(t *testing.T) {
	claims := Claims{
		PropMemberOfTeam: {
			entityClaim(PropMemberOfTeam, "Q2002"),
			entityClaim(PropMemberOfTeam, "Q3003"),
		},
	}

	assert.Equal(t, []string{"Q2002", "Q3003"}, claims.ObjectIDs(PropMemberOfTeam))
	assert.Empty(t, claims.ObjectIDs(PropOccupation))
}

func TestClaim_ObjectID_NonEntity(t *testing.T) {
	claim := Claim{}
	claim.MainSnak.DataValue.Type = "time"
	claim.MainSnak.DataValue.Value = map[string]interface{}{"time": "+1987-06-24T00:00:00Z"}

	_, ok := claim.ObjectID()
	assert.False(t, ok)
}

func TestIsFootballPerson(t *testing.T) {
	tests := []struct {
		name     string
		claims   Claims
		expected bool
	}{
		{
			name: "human football player by occupation",
			claims: Claims{
				PropInstanceOf: {entityClaim(PropInstanceOf, EntityHuman)},
				PropOccupation: {entityClaim(PropOccupation, EntityFootballPlayer)},
			},
			expected: true,
		},
		{
			name: "human playing football as sport",
			claims: Claims{
				PropInstanceOf: {entityClaim(PropInstanceOf, EntityHuman)},
				PropSport:      {entityClaim(PropSport, EntityFootball)},
			},
			expected: true,
		},
		{
			name: "not a human",
			claims: Claims{
				PropInstanceOf: {entityClaim(PropInstanceOf, "Q476028")},
				PropSport:      {entityClaim(PropSport, EntityFootball)},
			},
			expected: false,
		},
		{
			name: "human with unrelated occupation",
			claims: Claims{
				PropInstanceOf: {entityClaim(PropInstanceOf, EntityHuman)},
				PropOccupation: {entityClaim(PropOccupation, "Q33999")},
			},
			expected: false,
		},
		{
			name:     "empty claims",
			claims:   Claims{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFootballPerson(tt.claims))
		})
	}
}
