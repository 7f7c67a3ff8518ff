package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	webstyle "github.com/0kibob/webstyle-framework"
)

const defaultConfigFile = ".webstyle.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only explicitly set flags are loaded, so flag defaults never shadow
	// values from the file or the environment.
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("WEBSTYLE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps WEBSTYLE_BUILD_SOURCE to build.source and
// WEBSTYLE_CHECK_OUTPUT_FORMAT to check.output-format.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "WEBSTYLE_"))
	key = strings.Replace(key, "_", ".", 1)
	return strings.ReplaceAll(key, "_", "-")
}

// cliOptions is the resolved configuration of one command invocation.
type cliOptions struct {
	Source       string
	Destination  string
	Jobs         int
	Strict       bool
	OutputFormat string
	Verbose      bool
	Quiet        bool
	Color        bool
}

// buildOptions resolves options from koanf state. Positional arguments,
// when present, win over every other source.
func buildOptions(args []string) cliOptions {
	opts := cliOptions{
		Source:       getStringWithFallback("source", "build.source", webstyle.DefaultSourceDir),
		Destination:  getStringWithFallback("destination", "build.destination", webstyle.DefaultOutputDir),
		Jobs:         getIntWithFallback("jobs", "build.jobs", 1),
		Strict:       getBoolWithFallback("strict", "build.strict", false),
		OutputFormat: getStringWithFallback("output-format", "check.output-format", "issues"),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
		Quiet:        getBoolWithFallback("quiet", "quiet", false),
		Color:        getBoolWithFallback("color", "color", false),
	}

	if len(args) >= 1 {
		opts.Source = args[0]
	}
	if len(args) == 2 {
		opts.Destination = args[1]
	}

	return opts
}

// libraryConfig converts options to the library's Config.
func (o cliOptions) libraryConfig(logger *zap.Logger) webstyle.Config {
	return webstyle.Config{
		SourceDir: o.Source,
		OutputDir: o.Destination,
		Jobs:      o.Jobs,
		Logger:    logger,
	}
}

// newLogger builds the console logger used by every command. Logs go to
// stderr so that stdout stays machine readable.
func newLogger(opts cliOptions) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	switch {
	case opts.Quiet:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.FatalLevel)
	case opts.Verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
