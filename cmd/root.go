/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/waitlist/internal/config"
)

var version = "0.1.0"

var (
	configFile string

	cfg    *config.Config
	logger = zap.NewNop()
)

// flagKeys maps flag names to config keys. Flags that a command does not
// define are skipped when binding.
var flagKeys = map[string]string{
	"host":                "host",
	"local-base-url":      "local_base_url",
	"production-base-url": "production_base_url",
	"lang":                "lang",
	"db":                  "db",
	"history":             "history",
	"timeout":             "timeout",
	"verbose":             "verbose",
	"concurrency":         "concurrency",
	"single-flight":       "single_flight",
}

var rootCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Join the product waitlist from the command line",
	Long: `A CLI client for the growth waitlist service.

It validates an email address, posts it to the waitlist endpoint and reports
the outcome. The endpoint's base URL is chosen from the page host:
"localhost" and "127.0.0.1" use the local development server, anything
else uses production.

Use "waitlist join --help" for submission options.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.New(configFile)
		if err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}

		cfg, err = config.Load(v)
		if err != nil {
			return err
		}

		zapConfig := zap.NewProductionConfig()
		if cfg.Verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Debug("Configuration loaded",
			zap.String("host", cfg.Host),
			zap.String("base_url", cfg.BaseURL()),
			zap.String("lang", cfg.Lang))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// outcomeError marks a run whose failure was already shown to the user.
type outcomeError struct {
	outcome string
}

func (e *outcomeError) Error() string {
	return "submission " + e.outcome
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var oe *outcomeError
		if !errors.As(err, &oe) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./waitlist.yaml)")
	rootCmd.PersistentFlags().String("host", "", `Host name the form is served from ("localhost" or "127.0.0.1" selects the local server)`)
	rootCmd.PersistentFlags().String("local-base-url", config.DefaultLocalBaseURL, "Base URL used for local hosts")
	rootCmd.PersistentFlags().String("production-base-url", config.DefaultProductionBaseURL, "Base URL used for every other host")
	rootCmd.PersistentFlags().String("lang", config.DefaultLang, "Message language (tr, en)")
	rootCmd.PersistentFlags().String("db", config.DefaultDBPath, "Database path for the submission journal")
	rootCmd.PersistentFlags().Bool("history", false, "Record submissions in the journal at --db")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Request timeout (0 = no timeout)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
