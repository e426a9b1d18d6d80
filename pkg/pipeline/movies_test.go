package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/wikidata"
)

func timeClaim(value string) wikidata.Claims {
	claim := wikidata.Claim{}
	claim.MainSnak.DataValue.Type = "time"
	claim.MainSnak.DataValue.Value = map[string]interface{}{"time": value}
	return wikidata.Claims{wikidata.PropPublication: {claim}}
}

func TestRunner_BuildMovies(t *testing.T) {
	ctx := context.Background()

	luaPath := filepath.Join(t.TempDir(), "cgroup_movie.lua")
	require.NoError(t, os.WriteFile(luaPath, []byte(
		"Item('The Shawshank Redemption', 'zh-tw:刺激1995;zh-hk:月黑高飛;'),\n"+
			"Item('Unknown Film', 'zh-hk:無名片;'),\n"+
			"Item('Dateless Film', 'zh-hk:冇日期;'),\n"), 0o644))

	source := scenarioSource()
	source.search = map[string][]wikidata.SearchResult{
		"The Shawshank Redemption": {{ID: "Q172241", Label: "The Shawshank Redemption"}},
		"Dateless Film":            {{ID: "Q999", Label: "Dateless Film"}},
	}
	source.claims["Q172241"] = timeClaim("+1994-09-10T00:00:00Z")

	cfg := testRunConfig(t)
	cfg.LuaTablePath = luaPath
	runner := NewRunner(source, cfg, WithLogger(logging.NoOp()))

	movies, err := runner.BuildMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)

	assert.Equal(t, "Q172241", movies[0].ID)
	assert.Equal(t, "The Shawshank Redemption", movies[0].Name)
	assert.Equal(t, "月黑高飛", movies[0].Cantonese)
	assert.Equal(t, 1994, movies[0].ReleaseYear)
}

func TestRunner_BuildMovies_NoTable(t *testing.T) {
	cfg := testRunConfig(t)
	runner := NewRunner(scenarioSource(), cfg, WithLogger(logging.NoOp()))

	movies, err := runner.BuildMovies(context.Background())
	require.NoError(t, err)
	assert.Nil(t, movies)
}
