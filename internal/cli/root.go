package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/douessay/internal/cache"
	"github.com/ppiankov/douessay/internal/grammar"
	"github.com/ppiankov/douessay/internal/logging"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/pipeline"
	"github.com/ppiankov/douessay/internal/profile"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// envReplacer maps config keys onto env names (grammar.endpoint -> DOUESSAY_GRAMMAR_ENDPOINT)
var envReplacer = strings.NewReplacer(".", "_")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "douessay",
	Short: "DouEssay - heuristic essay grading for secondary school writing",
	Long: `DouEssay grades English essays (grades 9-12) with transparent keyword and
pattern heuristics, maps the result onto Ontario achievement levels, and
explains every score.

Scores are deterministic estimates. They support teacher judgment and do
not replace it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("douessay %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.douessay/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if err := setDefaults(model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".douessay"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DOUESSAY_*
	viper.SetEnvPrefix("DOUESSAY")
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars and flags can override it
func setDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	registerDefaults("", tree)
	return nil
}

func registerDefaults(prefix string, tree map[string]interface{}) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			registerDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// loadConfig resolves flags > env > config file > defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the zap logger described by config
func newLogger(cfg *model.Config) (*logging.Logger, error) {
	level := cfg.Logging.Level
	if verbose && level == "info" {
		level = "debug"
	}
	return logging.New(cfg.Logging.Mode, level)
}

// newGrader wires the grammar checker, its cache and the profile store into a grader
func newGrader(cfg *model.Config, log *logging.Logger) *pipeline.Grader {
	return newCachedGrader(cfg, log, cache.New(cfg.Cache))
}

// newCachedGrader is newGrader with a caller-owned grammar cache
func newCachedGrader(cfg *model.Config, log *logging.Logger, store cache.Cache) *pipeline.Grader {
	checker := grammar.New(cfg.Grammar, store)

	if cfg.Grammar.Enabled {
		log.Debug("grammar checker enabled", "endpoint", cfg.Grammar.Endpoint, "cache", cfg.Cache.Enabled)
	}

	return pipeline.NewGrader(cfg,
		pipeline.WithChecker(checker),
		pipeline.WithLogger(log),
		pipeline.WithProfiles(profile.NewMemoryStore(0)),
	)
}
