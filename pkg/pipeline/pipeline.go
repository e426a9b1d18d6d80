// Package pipeline wires the extraction, resolution, aggregation and
// question-generation stages into one batch run.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/tagus/canto-bench/pkg/aggregate"
	"github.com/tagus/canto-bench/pkg/interfaces"
	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/mcq"
	"github.com/tagus/canto-bench/pkg/names"
	"github.com/tagus/canto-bench/pkg/relations"
	"github.com/tagus/canto-bench/pkg/statements"
	"github.com/tagus/canto-bench/pkg/wikidata"
)

// EntitySource is the knowledge-base surface the pipeline consumes.
// *wikidata.Client satisfies it; tests substitute a fixture source.
type EntitySource interface {
	FetchEntityDocument(ctx context.Context, entityID string) (*wikidata.Document, error)
	GetClaims(ctx context.Context, entityIDs []string) (map[string]wikidata.Claims, error)
	SearchEntities(ctx context.Context, query string) ([]wikidata.SearchResult, error)
}

// Runner executes pipeline stages against an entity source
type Runner struct {
	source EntitySource
	config *RunConfig
	logger logging.Logger
	clock  func() time.Time
}

// RunnerOption configures the runner
type RunnerOption func(*Runner)

// WithLogger sets the logger
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock overrides the generation timestamp source. Pinning the clock
// makes dataset files reproducible byte for byte.
func WithClock(clock func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.clock = clock
	}
}

// NewRunner creates a pipeline runner
func NewRunner(source EntitySource, runConfig *RunConfig, options ...RunnerOption) *Runner {
	runner := &Runner{
		source: source,
		config: runConfig,
		logger: logging.New(),
		clock:  time.Now,
	}
	for _, option := range options {
		option(runner)
	}
	return runner
}

// Extraction holds everything harvested from the raw entity documents
type Extraction struct {
	PersonIDs    []string
	Facts        []statements.MembershipFact
	BirthYears   map[string]int
	DisplayNames map[string]string
	Labels       *names.LabelProvider
}

// ExtractPlayers fetches each configured player's document and extracts
// membership facts, birth years and labels. Individual fetch failures
// and non-football entities are skipped and logged; producing no
// documents at all is fatal.
func (r *Runner) ExtractPlayers(ctx context.Context) (*Extraction, error) {
	if len(r.config.PlayerIDs) == 0 {
		return nil, fmt.Errorf("no player IDs configured")
	}

	claims, err := r.source.GetClaims(ctx, r.config.PlayerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player claims: %w", err)
	}

	extraction := &Extraction{
		BirthYears:   make(map[string]int),
		DisplayNames: make(map[string]string),
		Labels:       names.NewLabelProvider(),
	}

	for _, personID := range r.config.PlayerIDs {
		if personClaims, ok := claims[personID]; ok && !wikidata.IsFootballPerson(personClaims) {
			r.logger.Info(ctx, "Skipping non-football entity", map[string]interface{}{
				"person_id": personID,
			})
			continue
		}

		doc, err := r.source.FetchEntityDocument(ctx, personID)
		if err != nil {
			r.logger.Warn(ctx, "Skipping player, document fetch failed", map[string]interface{}{
				"person_id": personID,
				"error":     err.Error(),
			})
			continue
		}

		extraction.PersonIDs = append(extraction.PersonIDs, personID)
		extraction.Facts = append(extraction.Facts, statements.Extract(ctx, doc, personID, r.logger)...)
		if year, ok := statements.BirthYear(doc, personID); ok {
			extraction.BirthYears[personID] = year
		}

		extraction.Labels.AddDocument(doc)
		r.harvestDisplayNames(doc, extraction.DisplayNames)
	}

	if len(extraction.PersonIDs) == 0 {
		return nil, fmt.Errorf("no player documents could be read")
	}

	r.logger.Info(ctx, "Extraction complete", map[string]interface{}{
		"persons": len(extraction.PersonIDs),
		"facts":   len(extraction.Facts),
	})
	return extraction, nil
}

// harvestDisplayNames records the English label of every entity in a
// document; referenced organizations carry their labels in the same graph.
func (r *Runner) harvestDisplayNames(doc *wikidata.Document, into map[string]string) {
	for _, node := range doc.Graph {
		entityID := node.EntityID()
		if entityID == "" {
			continue
		}
		if _, exists := into[entityID]; exists {
			continue
		}
		for _, lv := range node.LangValues("label") {
			if lv.Lang == "en" {
				into[entityID] = lv.Value
				break
			}
		}
	}
}

// Result is the output of the in-memory core stages
type Result struct {
	Records []aggregate.PersonRecord
	Pairs   []relations.Pair
	Misses  []string
}

// Process runs name resolution, aggregation and relationship derivation
// over an extraction. Pure in-memory transformation; never fails.
func (r *Runner) Process(ctx context.Context, extraction *Extraction, providers []interfaces.NameProvider) *Result {
	resolver := names.NewResolver(providers,
		names.WithLanguages(r.config.Languages...),
		names.WithResolverLogger(r.logger),
	)

	ids := make([]string, 0, len(extraction.PersonIDs)+len(extraction.Facts))
	ids = append(ids, extraction.PersonIDs...)
	for _, fact := range extraction.Facts {
		ids = append(ids, fact.OrgID)
	}
	resolved, missed := resolver.ResolveAll(ctx, ids)

	records := aggregate.Aggregate(ctx, extraction.PersonIDs, extraction.Facts,
		extraction.DisplayNames, resolved, r.logger)
	pairs := relations.Derive(records)

	r.logger.Info(ctx, "Processing complete", map[string]interface{}{
		"records": len(records),
		"pairs":   len(pairs),
		"misses":  len(missed),
	})
	return &Result{Records: records, Pairs: pairs, Misses: missed}
}

// Providers assembles the name-provider chain: the ParaNames dump when
// configured, then labels harvested from the fetched documents.
func (r *Runner) Providers(ctx context.Context, extraction *Extraction) []interfaces.NameProvider {
	var providers []interfaces.NameProvider

	if r.config.ParaNamesPath != "" {
		if _, err := os.Stat(r.config.ParaNamesPath); err == nil {
			provider, err := names.LoadParaNamesFile(r.config.ParaNamesPath, r.config.Languages...)
			if err != nil {
				r.logger.Warn(ctx, "Failed to load ParaNames dump, continuing without it", map[string]interface{}{
					"path":  r.config.ParaNamesPath,
					"error": err.Error(),
				})
			} else {
				providers = append(providers, provider)
				r.logger.Info(ctx, "Loaded ParaNames dump", map[string]interface{}{
					"path":     r.config.ParaNamesPath,
					"entities": provider.Len(),
				})
			}
		}
	}

	return append(providers, extraction.Labels)
}

// Questions holds the generated datasets for one run
type Questions struct {
	TeamAffiliation mcq.Dataset
	Teammates       mcq.Dataset
	BirthYears      mcq.Dataset
	DebutYears      mcq.Dataset
	MovieYears      mcq.Dataset
}

// GenerateQuestions produces all five datasets from a processed result.
// All sampling comes from one seeded source, so a fixed seed and a
// pinned clock reproduce the exact datasets.
func (r *Runner) GenerateQuestions(extraction *Extraction, result *Result, movies []mcq.Movie, templates *mcq.Templates) *Questions {
	rng := rand.New(rand.NewSource(r.config.Seed))
	limit := r.config.QuestionLimit
	generatedAt := r.clock()

	team := mcq.GenerateTeamAffiliation(rng, result.Records, templates, limit)
	teammates := mcq.GenerateTeammates(rng, result.Records, result.Pairs, templates, limit)
	birth := mcq.GenerateBirthYears(rng, result.Records, extraction.BirthYears, templates, limit)
	debut := mcq.GenerateDebutYears(rng, result.Records, templates, limit)
	movie := mcq.GenerateMovieReleaseYears(rng, movies, templates, limit)

	return &Questions{
		TeamAffiliation: mcq.NewDataset(
			"Multiple-choice questions about football player team affiliations",
			mcq.QuestionTypeTeamAffiliation, team, generatedAt),
		Teammates: mcq.NewDataset(
			"Multiple-choice questions about club teammate relationships",
			mcq.QuestionTypeTeammate, teammates, generatedAt),
		BirthYears: mcq.NewDataset(
			"Multiple-choice questions about football player birth years",
			mcq.QuestionTypeBirthYear, birth, generatedAt),
		DebutYears: mcq.NewDataset(
			"Multiple-choice questions about football player national team debut years",
			mcq.QuestionTypeDebutYear, debut, generatedAt),
		MovieYears: mcq.NewDataset(
			"Multiple-choice questions about movie release years",
			mcq.QuestionTypeMovieReleaseYear, movie, generatedAt),
	}
}

// Run executes the full pipeline: extract, resolve, aggregate, derive,
// generate and write all outputs.
func (r *Runner) Run(ctx context.Context) error {
	extraction, err := r.ExtractPlayers(ctx)
	if err != nil {
		return err
	}

	result := r.Process(ctx, extraction, r.Providers(ctx, extraction))

	movies, err := r.BuildMovies(ctx)
	if err != nil {
		r.logger.Warn(ctx, "Movie extraction failed, continuing without movie questions", map[string]interface{}{
			"error": err.Error(),
		})
	}

	templates := mcq.DefaultTemplates()
	if r.config.TemplatePath != "" {
		templates, err = mcq.LoadTemplates(r.config.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to load question templates: %w", err)
		}
	}
	questions := r.GenerateQuestions(extraction, result, movies, templates)

	if err := WriteRecords(filepath.Join(r.config.IntermediateDir, "person_records.json"), result.Records); err != nil {
		return err
	}
	if err := WriteMissReport(filepath.Join(r.config.IntermediateDir, "name_misses.json"), result.Misses); err != nil {
		return err
	}

	outputs := map[string]mcq.Dataset{
		"team_affiliation_questions.json":   questions.TeamAffiliation,
		"teammate_questions.json":           questions.Teammates,
		"birth_year_questions.json":         questions.BirthYears,
		"debut_year_questions.json":         questions.DebutYears,
		"movie_release_year_questions.json": questions.MovieYears,
	}
	for name, dataset := range outputs {
		if err := WriteDataset(filepath.Join(r.config.OutputDir, name), dataset); err != nil {
			return err
		}
	}

	r.logger.Info(ctx, "Pipeline run complete", map[string]interface{}{
		"output_dir": r.config.OutputDir,
	})
	return nil
}
