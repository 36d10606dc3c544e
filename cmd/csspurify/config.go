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

	"github.com/yacobolo/csspurify"
	"github.com/yacobolo/csspurify/internal/purify"
)

const defaultConfigPath = ".csspurify.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSPURIFY_* prefix)
	if err := k.Load(env.Provider("CSSPURIFY_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps environment variable names onto config keys:
//
//	CSSPURIFY_PURIFY_STRICT_HTML -> purify.strict-html
//	CSSPURIFY_LOG_FILE           -> log-file
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "CSSPURIFY_"))
	if rest, ok := strings.CutPrefix(key, "purify_"); ok {
		return "purify." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildOptions constructs the library's Options struct from koanf state.
func buildOptions(output string) csspurify.Options {
	opts := csspurify.Options{
		Minify:      getBoolWithFallback("minify", "purify.minify", true),
		Output:      output,
		Info:        getBoolWithFallback("info", "purify.info", false),
		Rejected:    getBoolWithFallback("rejected", "purify.rejected", false),
		Color:       getBoolWithFallback("color", "color", false),
		StrictHTML:  getBoolWithFallback("strict-html", "purify.strict-html", false),
		Concurrency: getIntWithFallback("concurrency", "purify.concurrency", csspurify.DefaultConcurrency),
	}

	opts.Whitelist = getStringsWithFallback("whitelist", "purify.whitelist", purify.DefaultWhitelist)

	return opts
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

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
// A single comma-separated string (as set through the environment) is split.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		if !k.Exists(key) {
			continue
		}
		values := k.Strings(key)
		if s, ok := k.Get(key).(string); ok {
			values = []string{s}
		}
		if len(values) == 1 && strings.Contains(values[0], ",") {
			values = strings.Split(values[0], ",")
		}
		return trimEmpty(values)
	}
	return append([]string(nil), defaultVal...)
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

// trimEmpty trims entries and drops empty ones
func trimEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
