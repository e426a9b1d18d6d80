package pipeline

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tagus/canto-bench/pkg/config"
)

// RunConfig is the per-run configuration for a pipeline execution.
// Values come from a YAML file overridden by CANTOBENCH_* environment
// variables; process-level settings (API URLs, Redis) stay in pkg/config.
type RunConfig struct {
	// Seed drives all distractor sampling and choice shuffling. Fixed
	// seed plus fixed input produces byte-identical output.
	Seed int64 `mapstructure:"seed"`

	// QuestionLimit caps questions per dataset; 0 means no cap
	QuestionLimit int `mapstructure:"question_limit"`

	// PlayerIDs are the person entities to process
	PlayerIDs []string `mapstructure:"player_ids"`

	// MovieLimit caps how many translation-table films are looked up
	MovieLimit int `mapstructure:"movie_limit"`

	// Languages are the Cantonese label codes in priority order
	Languages []string `mapstructure:"languages"`

	ParaNamesPath   string `mapstructure:"paranames_path"`
	LuaTablePath    string `mapstructure:"lua_table_path"`
	IntermediateDir string `mapstructure:"intermediate_dir"`
	OutputDir       string `mapstructure:"output_dir"`
	TemplatePath    string `mapstructure:"template_path"`
}

// LoadRunConfig reads the run configuration. A missing config file is
// fine when path is empty; defaults plus environment overrides apply.
func LoadRunConfig(path string) (*RunConfig, error) {
	cfg := config.Get()

	v := viper.New()
	v.SetDefault("seed", 42)
	v.SetDefault("question_limit", 50)
	v.SetDefault("movie_limit", 200)
	v.SetDefault("languages", []string{cfg.Languages.Primary, cfg.Languages.Secondary})
	v.SetDefault("paranames_path", cfg.Data.ParaNamesPath)
	v.SetDefault("lua_table_path", cfg.Data.LuaTablePath)
	v.SetDefault("intermediate_dir", cfg.Data.IntermediateDir)
	v.SetDefault("output_dir", cfg.Data.OutputDir)

	v.SetEnvPrefix("CANTOBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read run config: %w", err)
		}
	}

	var runConfig RunConfig
	if err := v.Unmarshal(&runConfig); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}
	return &runConfig, nil
}
