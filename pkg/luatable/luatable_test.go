package luatable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLua = `-- CGroup for film titles
local Item = require('Module:CGroup/core').Item

Item('The Shawshank Redemption', 'zh-tw:刺激1995;zh-hk:月黑高飛;zh-cn:肖申克的救赎;'),
Item('Inception', 'zh-tw:全面啟動;zh-mo:潛行凶間;zh-cn:盗梦空间;'),
{ type = 'text', text = '==經典電影==' },
Item('Mandarin Only', 'zh-cn:普通话片名;'),
Item('', 'zh-hk:無英文名;'),

{ type = 'text', text = '==獎項、電影節==' },
Item('Cannes Film Festival', 'zh-tw:坎城影展;zh-hk:康城影展;'),
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleLua))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "The Shawshank Redemption", entries[0].English)
	assert.Equal(t, "月黑高飛", entries[0].Cantonese)
	assert.Equal(t, 4, entries[0].Line)

	// zh-mo serves as the Cantonese title when zh-hk is absent
	assert.Equal(t, "Inception", entries[1].English)
	assert.Equal(t, "潛行凶間", entries[1].Cantonese)
}

func TestParse_StopsAtNonMovieSection(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleLua))
	require.NoError(t, err)

	for _, entry := range entries {
		assert.NotEqual(t, "Cannes Film Festival", entry.English)
	}
}

func TestCantoneseTitle(t *testing.T) {
	tests := []struct {
		name     string
		rules    string
		expected string
		ok       bool
	}{
		{name: "zh-hk present", rules: "zh-tw:甲;zh-hk:乙;zh-cn:丙;", expected: "乙", ok: true},
		{name: "zh-mo fallback", rules: "zh-tw:甲;zh-mo:丁;", expected: "丁", ok: true},
		{name: "zh-hk beats zh-mo", rules: "zh-mo:丁;zh-hk:乙;", expected: "乙", ok: true},
		{name: "no cantonese rule", rules: "zh-tw:甲;zh-cn:丙;", ok: false},
		{name: "trailing punctuation trimmed", rules: "zh-hk:乙;;", expected: "乙", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := CantoneseTitle(tt.rules)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, title)
		})
	}
}

func TestToTable(t *testing.T) {
	entries := []Entry{
		{English: "Inception", Cantonese: "舊譯"},
		{English: "Inception", Cantonese: "潛行凶間"},
	}
	table := ToTable(entries)
	require.Len(t, table, 1)
	assert.Equal(t, "潛行凶間", table["Inception"])
}
