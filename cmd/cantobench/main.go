package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tagus/canto-bench/pkg/config"
	"github.com/tagus/canto-bench/pkg/interfaces"
	"github.com/tagus/canto-bench/pkg/logging"
	"github.com/tagus/canto-bench/pkg/mcq"
	"github.com/tagus/canto-bench/pkg/names"
	"github.com/tagus/canto-bench/pkg/pipeline"
	"github.com/tagus/canto-bench/pkg/relations"
	"github.com/tagus/canto-bench/pkg/wikidata"
)

const version = "0.2.0"

// Global logger instance
var logger = logging.New()

func main() {
	for i, arg := range os.Args {
		if arg == "--log-json" {
			logging.SetZeroLogJsonEnabled()
			os.Args = append(os.Args[:i], os.Args[i+1:]...)
			logger = logging.New()
			break
		}
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	switch command {
	case "version", "--version", "-v":
		fmt.Printf("cantobench v%s\n", version)
	case "help", "--help", "-h":
		printUsage()
	case "run":
		runPipeline()
	case "extract":
		extractPlayers()
	case "names":
		resolveNames()
	case "questions":
		generateQuestions()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Printf("cantobench v%s - Cantonese benchmark data pipeline\n", version)
	fmt.Println(`USAGE:
    cantobench <command> [options]

COMMANDS:
    run                 Run the full pipeline (extract, resolve, aggregate, generate)
    extract             Fetch player documents and extract membership facts
    names               Resolve Cantonese names and write the name table + miss list
    questions           Generate question datasets from stored person records
    version             Show version information
    help                Show this help message

OPTIONS:
    --config=<path>     Run configuration YAML (defaults + CANTOBENCH_* env vars)
    --players=<ids>     Comma-separated player entity IDs (overrides config)
    --seed=<n>          Sampling seed (overrides config)
    --log-json          Emit JSON logs instead of console output

EXAMPLES:
    # Full run from a config file
    cantobench run --config=run.yaml

    # Extract two players without a config file
    cantobench extract --players=Q10520,Q615

    # Regenerate questions from existing intermediate data
    cantobench questions --config=run.yaml --seed=7`)
}

// parseRunConfig loads the run config and applies command-line overrides
func parseRunConfig(args []string) (*pipeline.RunConfig, error) {
	configPath := ""
	var players []string
	seed := int64(-1)

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--players="):
			players = strings.Split(strings.TrimPrefix(arg, "--players="), ",")
		case strings.HasPrefix(arg, "--seed="):
			if _, err := fmt.Sscanf(strings.TrimPrefix(arg, "--seed="), "%d", &seed); err != nil {
				return nil, fmt.Errorf("invalid --seed value: %w", err)
			}
		default:
			return nil, fmt.Errorf("unknown option: %s", arg)
		}
	}

	runConfig, err := pipeline.LoadRunConfig(configPath)
	if err != nil {
		return nil, err
	}
	if len(players) > 0 {
		runConfig.PlayerIDs = players
	}
	if seed >= 0 {
		runConfig.Seed = seed
	}
	return runConfig, nil
}

// runContext builds the context carrying a fresh run ID for log correlation
func runContext() context.Context {
	return context.WithValue(context.Background(), logging.RunIDKey, uuid.New().String())
}

// newClient builds the Wikidata client, with Redis caching when enabled
func newClient(ctx context.Context) *wikidata.Client {
	cfg := config.Get()

	var cache interfaces.EntityCache
	if cfg.Cache.Enabled {
		redisCache, err := wikidata.NewRedisCacheFromConfig(cfg)
		if err != nil {
			logger.Warn(ctx, "Redis unavailable, using in-memory cache", map[string]interface{}{
				"error": err.Error(),
			})
			cache = wikidata.NewMemoryCache()
		} else {
			cache = redisCache
		}
	} else {
		cache = wikidata.NewMemoryCache()
	}

	return wikidata.NewClient(
		wikidata.WithCache(cache),
		wikidata.WithLogger(logger),
	)
}

func runPipeline() {
	ctx := runContext()
	runConfig, err := parseRunConfig(os.Args[2:])
	if err != nil {
		fatal(ctx, "Invalid configuration", err)
	}

	runner := pipeline.NewRunner(newClient(ctx), runConfig, pipeline.WithLogger(logger))
	if err := runner.Run(ctx); err != nil {
		fatal(ctx, "Pipeline run failed", err)
	}
}

func extractPlayers() {
	ctx := runContext()
	runConfig, err := parseRunConfig(os.Args[2:])
	if err != nil {
		fatal(ctx, "Invalid configuration", err)
	}

	runner := pipeline.NewRunner(newClient(ctx), runConfig, pipeline.WithLogger(logger))
	extraction, err := runner.ExtractPlayers(ctx)
	if err != nil {
		fatal(ctx, "Extraction failed", err)
	}

	path := filepath.Join(runConfig.IntermediateDir, "membership_facts.json")
	if err := writeJSON(path, extraction.Facts); err != nil {
		fatal(ctx, "Failed to write facts", err)
	}
	fmt.Printf("Extracted %d facts for %d players -> %s\n",
		len(extraction.Facts), len(extraction.PersonIDs), path)
}

func resolveNames() {
	ctx := runContext()
	runConfig, err := parseRunConfig(os.Args[2:])
	if err != nil {
		fatal(ctx, "Invalid configuration", err)
	}

	runner := pipeline.NewRunner(newClient(ctx), runConfig, pipeline.WithLogger(logger))
	extraction, err := runner.ExtractPlayers(ctx)
	if err != nil {
		fatal(ctx, "Extraction failed", err)
	}

	resolver := names.NewResolver(runner.Providers(ctx, extraction),
		names.WithLanguages(runConfig.Languages...),
		names.WithResolverLogger(logger),
	)
	ids := extraction.PersonIDs
	for _, fact := range extraction.Facts {
		ids = append(ids, fact.OrgID)
	}
	resolved, missed := resolver.ResolveAll(ctx, ids)

	table := names.Table(resolved)
	tablePath := filepath.Join(runConfig.IntermediateDir, "names.json")
	if err := names.WriteTable(tablePath, table); err != nil {
		fatal(ctx, "Failed to write name table", err)
	}
	if err := pipeline.WriteMissReport(filepath.Join(runConfig.IntermediateDir, "name_misses.json"), missed); err != nil {
		fatal(ctx, "Failed to write miss report", err)
	}
	fmt.Printf("Resolved %d names (%d misses) -> %s\n", len(resolved), len(missed), tablePath)
}

func generateQuestions() {
	ctx := runContext()
	runConfig, err := parseRunConfig(os.Args[2:])
	if err != nil {
		fatal(ctx, "Invalid configuration", err)
	}

	recordsPath := filepath.Join(runConfig.IntermediateDir, "person_records.json")
	records, err := pipeline.ReadRecords(recordsPath)
	if err != nil {
		fatal(ctx, "Failed to read person records (run 'cantobench run' first)", err)
	}

	templates := mcq.DefaultTemplates()
	if runConfig.TemplatePath != "" {
		templates, err = mcq.LoadTemplates(runConfig.TemplatePath)
		if err != nil {
			fatal(ctx, "Failed to load templates", err)
		}
	}

	// Only the record-backed datasets can be rebuilt offline; birth-year
	// and movie datasets need a full run.
	rng := rand.New(rand.NewSource(runConfig.Seed))
	pairs := relations.Derive(records)
	team := mcq.GenerateTeamAffiliation(rng, records, templates, runConfig.QuestionLimit)
	teammates := mcq.GenerateTeammates(rng, records, pairs, templates, runConfig.QuestionLimit)
	debut := mcq.GenerateDebutYears(rng, records, templates, runConfig.QuestionLimit)

	generatedAt := time.Now()
	outputs := map[string]mcq.Dataset{
		"team_affiliation_questions.json": mcq.NewDataset(
			"Multiple-choice questions about football player team affiliations",
			mcq.QuestionTypeTeamAffiliation, team, generatedAt),
		"teammate_questions.json": mcq.NewDataset(
			"Multiple-choice questions about club teammate relationships",
			mcq.QuestionTypeTeammate, teammates, generatedAt),
		"debut_year_questions.json": mcq.NewDataset(
			"Multiple-choice questions about football player national team debut years",
			mcq.QuestionTypeDebutYear, debut, generatedAt),
	}
	for name, dataset := range outputs {
		path := filepath.Join(runConfig.OutputDir, name)
		if err := pipeline.WriteDataset(path, dataset); err != nil {
			fatal(ctx, "Failed to write questions", err)
		}
		fmt.Printf("Generated %d questions -> %s\n", dataset.Metadata.TotalQuestions, path)
	}
}

func writeJSON(path string, value interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fatal(ctx context.Context, msg string, err error) {
	logger.Error(ctx, msg, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}
