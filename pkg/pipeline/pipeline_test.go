package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagus/canto-bench/pkg/interfaces"
	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/names"
	"github.com/tagus/canto-bench/pkg/wikidata"
)

type fakeSource struct {
	docs    map[string]string
	claims  map[string]wikidata.Claims
	search  map[string][]wikidata.SearchResult
	fetched int
}

func (f *fakeSource) FetchEntityDocument(_ context.Context, entityID string) (*wikidata.Document, error) {
	raw, ok := f.docs[entityID]
	if !ok {
		return nil, fmt.Errorf("no document for %s", entityID)
	}
	f.fetched++
	return wikidata.ParseDocument([]byte(raw))
}

func (f *fakeSource) GetClaims(_ context.Context, entityIDs []string) (map[string]wikidata.Claims, error) {
	result := make(map[string]wikidata.Claims)
	for _, id := range entityIDs {
		if claims, ok := f.claims[id]; ok {
			result[id] = claims
		}
	}
	return result, nil
}

func (f *fakeSource) SearchEntities(_ context.Context, query string) ([]wikidata.SearchResult, error) {
	return f.search[query], nil
}

func playerDoc(personID string, englishName, cantoneseName string, stints []string) string {
	doc := fmt.Sprintf(`{"@graph": [
		{"@id": "wd:%s", "@type": "wikibase:Item",
		 "label": [{"@language": "en", "@value": "%s"}, {"@language": "yue", "@value": "%s"}],
		 "P569": "1987-06-24T00:00:00Z"}`, personID, englishName, cantoneseName)
	for _, stint := range stints {
		doc += ",\n" + stint
	}
	doc += `,
		{"@id": "wd:QA", "@type": "wikibase:Item",
		 "label": [{"@language": "en", "@value": "Org A"}, {"@language": "yue", "@value": "甲組織"}]},
		{"@id": "wd:QB", "@type": "wikibase:Item",
		 "label": [{"@language": "en", "@value": "Org B"}, {"@language": "yue", "@value": "乙組織"}]}
	]}`
	return doc
}

func stint(personID, orgID, start, end string) string {
	s := fmt.Sprintf(`{"@id": "wds:%s-%s", "@type": "wikibase:Statement", "ps:P54": "wd:%s"`, personID, orgID, orgID)
	if start != "" {
		s += fmt.Sprintf(`, "P580": "%s"`, start)
	}
	if end != "" {
		s += fmt.Sprintf(`, "P582": "%s"`, end)
	} else {
		s += `, "P582": {"@id": "_:b0"}`
	}
	return s + "}"
}

func footballClaims() wikidata.Claims {
	human := wikidata.Claim{}
	human.MainSnak.DataValue.Type = "wikibase-entityid"
	human.MainSnak.DataValue.Value = map[string]interface{}{"id": wikidata.EntityHuman}
	player := wikidata.Claim{}
	player.MainSnak.DataValue.Type = "wikibase-entityid"
	player.MainSnak.DataValue.Value = map[string]interface{}{"id": wikidata.EntityFootballPlayer}
	return wikidata.Claims{
		wikidata.PropInstanceOf: {human},
		wikidata.PropOccupation: {player},
	}
}

func scenarioSource() *fakeSource {
	return &fakeSource{
		docs: map[string]string{
			"Q1": playerDoc("Q1", "Name1", "名一", []string{
				stint("Q1", "QA", "2010-01-01T00:00:00Z", ""),
				stint("Q1", "QB", "2015-01-01T00:00:00Z", "2016-01-01T00:00:00Z"),
			}),
			"Q2": playerDoc("Q2", "Name2", "名二", []string{
				stint("Q2", "QA", "2011-01-01T00:00:00Z", ""),
			}),
		},
		claims: map[string]wikidata.Claims{
			"Q1": footballClaims(),
			"Q2": footballClaims(),
		},
	}
}

func testRunConfig(t *testing.T) *RunConfig {
	t.Helper()
	dir := t.TempDir()
	return &RunConfig{
		Seed:            42,
		QuestionLimit:   50,
		PlayerIDs:       []string{"Q1", "Q2"},
		Languages:       []string{"yue", "zh-hk"},
		IntermediateDir: filepath.Join(dir, "intermediate"),
		OutputDir:       filepath.Join(dir, "output"),
	}
}

func TestRunner_EndToEnd(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(scenarioSource(), testRunConfig(t), WithLogger(logging.NoOp()))

	extraction, err := runner.ExtractPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2"}, extraction.PersonIDs)
	assert.Len(t, extraction.Facts, 3)
	assert.Equal(t, 1987, extraction.BirthYears["Q1"])
	assert.Equal(t, "Org A", extraction.DisplayNames["QA"])

	result := runner.Process(ctx, extraction, runner.Providers(ctx, extraction))

	require.Len(t, result.Records, 2)
	p1, p2 := result.Records[0], result.Records[1]

	assert.Equal(t, "Q1", p1.PersonID)
	assert.Equal(t, "Name1", p1.DisplayName)
	assert.Equal(t, "名一", p1.LocalizedName)
	require.Len(t, p1.Organizations, 2)
	assert.Equal(t, "QA", p1.Organizations[0].OrganizationID)
	assert.True(t, p1.Organizations[0].IsCurrent)
	assert.Equal(t, "甲組織", p1.Organizations[0].LocalizedName)
	assert.Equal(t, "QB", p1.Organizations[1].OrganizationID)
	assert.False(t, p1.Organizations[1].IsCurrent)

	assert.Equal(t, "Q2", p2.PersonID)
	require.Len(t, p2.Organizations, 1)
	assert.Equal(t, "QA", p2.Organizations[0].OrganizationID)
	assert.True(t, p2.Organizations[0].IsCurrent)

	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "Q1", result.Pairs[0].PersonA)
	assert.Equal(t, "Q2", result.Pairs[0].PersonB)
	assert.Equal(t, "QA", result.Pairs[0].OrganizationID)

	assert.Empty(t, result.Misses)
}

func TestRunner_MissList(t *testing.T) {
	ctx := context.Background()
	source := scenarioSource()
	runner := NewRunner(source, testRunConfig(t), WithLogger(logging.NoOp()))

	extraction, err := runner.ExtractPlayers(ctx)
	require.NoError(t, err)

	// An empty provider chain resolves nothing
	result := runner.Process(ctx, extraction, []interfaces.NameProvider{
		names.NewStaticProvider("empty", nil),
	})

	assert.Len(t, result.Records, 2)
	assert.Equal(t, []string{"Q1", "Q2", "QA", "QB"}, result.Misses)
	for _, record := range result.Records {
		assert.Empty(t, record.LocalizedName)
	}
}

func TestRunner_SkipsFailedFetch(t *testing.T) {
	ctx := context.Background()
	source := scenarioSource()
	delete(source.docs, "Q2")

	runner := NewRunner(source, testRunConfig(t), WithLogger(logging.NoOp()))
	extraction, err := runner.ExtractPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1"}, extraction.PersonIDs)
}

func TestRunner_FatalWhenNothingReadable(t *testing.T) {
	ctx := context.Background()
	source := scenarioSource()
	source.docs = map[string]string{}

	runner := NewRunner(source, testRunConfig(t), WithLogger(logging.NoOp()))
	_, err := runner.ExtractPlayers(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no player documents")
}

func TestRunner_SkipsNonFootballEntity(t *testing.T) {
	ctx := context.Background()
	source := scenarioSource()
	source.claims["Q2"] = wikidata.Claims{}

	runner := NewRunner(source, testRunConfig(t), WithLogger(logging.NoOp()))
	extraction, err := runner.ExtractPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1"}, extraction.PersonIDs)
}

func TestRunner_Run_WritesOutputs(t *testing.T) {
	ctx := context.Background()
	cfg := testRunConfig(t)
	runner := NewRunner(scenarioSource(), cfg, WithLogger(logging.NoOp()))

	require.NoError(t, runner.Run(ctx))

	for _, path := range []string{
		filepath.Join(cfg.IntermediateDir, "person_records.json"),
		filepath.Join(cfg.IntermediateDir, "name_misses.json"),
		filepath.Join(cfg.OutputDir, "team_affiliation_questions.json"),
		filepath.Join(cfg.OutputDir, "teammate_questions.json"),
		filepath.Join(cfg.OutputDir, "birth_year_questions.json"),
		filepath.Join(cfg.OutputDir, "debut_year_questions.json"),
		filepath.Join(cfg.OutputDir, "movie_release_year_questions.json"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	records, err := ReadRecords(filepath.Join(cfg.IntermediateDir, "person_records.json"))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRunner_Idempotent(t *testing.T) {
	ctx := context.Background()
	cfg1, cfg2 := testRunConfig(t), testRunConfig(t)

	run := func(cfg *RunConfig) []byte {
		runner := NewRunner(scenarioSource(), cfg, WithLogger(logging.NoOp()))
		require.NoError(t, runner.Run(ctx))
		data, err := os.ReadFile(filepath.Join(cfg.IntermediateDir, "person_records.json"))
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(cfg1), run(cfg2))
}

func TestRunner_Run_DatasetsByteIdenticalWithPinnedClock(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	run := func(cfg *RunConfig) map[string][]byte {
		runner := NewRunner(scenarioSource(), cfg, WithLogger(logging.NoOp()), WithClock(clock))
		require.NoError(t, runner.Run(ctx))

		files := make(map[string][]byte)
		for _, name := range []string{
			"team_affiliation_questions.json",
			"teammate_questions.json",
			"birth_year_questions.json",
			"debut_year_questions.json",
			"movie_release_year_questions.json",
		} {
			data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
			require.NoError(t, err)
			files[name] = data
		}
		return files
	}

	assert.Equal(t, run(testRunConfig(t)), run(testRunConfig(t)))
}

func TestLoadRunConfig_Defaults(t *testing.T) {
	cfg, err := LoadRunConfig("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 50, cfg.QuestionLimit)
	assert.Equal(t, []string{"yue", "zh-hk"}, cfg.Languages)
}

func TestLoadRunConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"seed: 7\nplayer_ids:\n  - Q10520\nquestion_limit: 5\n"), 0o644))

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []string{"Q10520"}, cfg.PlayerIDs)
	assert.Equal(t, 5, cfg.QuestionLimit)
}
