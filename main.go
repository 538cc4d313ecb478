package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	inputPath  string
	sourceFlag string
	targetFlag string
	presetFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sqlferry [config.toml]",
	Short: "Oracle SQL dialect conversion tool",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConversion,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to conversion TOML config file")
	rootCmd.Flags().StringVar(&inputPath, "input", "", "SQL file to convert (stdin when omitted)")
	rootCmd.Flags().StringVar(&sourceFlag, "source", "", "source dialect (overrides config)")
	rootCmd.Flags().StringVar(&targetFlag, "target", "", "target dialect (overrides config)")
	rootCmd.Flags().StringVar(&presetFlag, "preset", "", "rule preset: default, minimal or strict (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConversion(cmd *cobra.Command, args []string) error {
	// Resolve config path: positional arg takes precedence over --config flag
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}

	cfg := &RunConfig{
		Preset:  "default",
		Rules:   DefaultRules(),
		Options: OptionsConfig{EnableComments: true, FormatSQL: true},
	}
	if cfgPath != "" {
		loaded, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if targetFlag != "" {
		cfg.Target = targetFlag
	}
	if presetFlag != "" && presetFlag != cfg.Preset {
		rules, err := ParsePreset(presetFlag)
		if err != nil {
			return err
		}
		cfg.Preset = presetFlag
		cfg.Rules = rules
	}

	var err error
	if cfg.Source == "" || cfg.Target == "" {
		return fmt.Errorf("source and target dialects required: set them in the config file or via --source/--target")
	}
	cfg.sourceDialect, err = ParseDialect(cfg.Source)
	if err != nil {
		return err
	}
	cfg.targetDialect, err = ParseDialect(cfg.Target)
	if err != nil {
		return err
	}
	if cfg.sourceDialect == cfg.targetDialect {
		return fmt.Errorf("source and target dialects must differ")
	}

	sqlText, err := readInput(inputPath, cfg.Input)
	if err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()

	var converterOpts []ConverterOption
	if cfg.SessionStore.Path != "" {
		store, err := OpenSQLiteSessionStore(cfg.SessionStore.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		converterOpts = append(converterOpts, WithSessionStore(store))
	}
	if cfg.Validator.DSN != "" {
		validator, err := newStatementValidator(cfg.targetDialect, cfg.Validator.DSN)
		if err != nil {
			return err
		}
		converterOpts = append(converterOpts, WithValidator(validator))
	}

	log.Printf("sqlferry: converting %s to %s (preset=%s)", cfg.sourceDialect, cfg.targetDialect, cfg.Preset)

	converter := NewConverter(converterOpts...)
	result := converter.Convert(ctx, sqlText, cfg.sourceDialect, cfg.targetDialect, cfg.ConversionOptions(), cfg.Rules)

	for _, rule := range result.AppliedRules {
		log.Printf("  applied: %s", rule)
	}
	for _, w := range result.Warnings {
		if w.Suggestion != "" {
			log.Printf("  %s [%s]: %s (suggestion: %s)", w.Severity, w.Type, w.Message, w.Suggestion)
		} else {
			log.Printf("  %s [%s]: %s", w.Severity, w.Type, w.Message)
		}
	}

	if !result.Success {
		return fmt.Errorf("conversion failed: %s", result.Error)
	}

	fmt.Println(result.ConvertedSQL)
	log.Printf("converted in %s (%d rules applied, %d warnings)",
		time.Since(start).Round(time.Millisecond), len(result.AppliedRules), len(result.Warnings))
	return nil
}

// readInput reads the SQL text from the flag path, the config path, or
// stdin, in that order of precedence.
func readInput(flagPath, cfgPath string) (string, error) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
