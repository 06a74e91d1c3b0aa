/*
 * Copyright 2025 Author(s) of TypeBus
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/typebus/core/pkg/appconsts"
	"github.com/typebus/core/pkg/config"
	"github.com/typebus/core/pkg/logging"
	"github.com/typebus/core/pkg/metrics"
)

// newRootCmd creates and configures the main command for the demo binary.
// Running it without a subcommand wires a dispatcher together with logging
// and metrics and runs the walkthrough in demo.go: every subscription flavor
// (exact type, interface, universal, value) plus a re-entrant publish, torn
// down through a Scope at the end.
//
// A `version` subcommand prints the build version.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appconsts.Name,
		Short: "TypeBus is a synchronous in-process publish/subscribe dispatcher.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadDemoConfig()

			logLevel := slog.LevelInfo
			if cfg.Debug {
				logLevel = slog.LevelDebug
			}

			var logOutput io.Writer = os.Stdout
			if cfg.LogFile != "" {
				f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err != nil {
					return fmt.Errorf("failed to open logfile: %w", err)
				}
				defer f.Close()
				logOutput = f
			}
			logging.Init(logLevel, logOutput)

			if err := metrics.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize metrics: %w", err)
			}
			log := logging.GetLogger().With("service", appconsts.Name)

			if cfg.MetricsAddr != "" {
				go func() {
					if err := metrics.StartServer(cfg.MetricsAddr); err != nil {
						log.Error("Metrics server failed", "error", err)
					}
				}()
				log.Info("Serving metrics", "address", cfg.MetricsAddr)
			}

			return runDemo(log, cfg.Count)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of typebus",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appconsts.Name, appconsts.Version)
			if err != nil {
				return fmt.Errorf("failed to print version: %w", err)
			}
			return nil
		},
	}
	rootCmd.AddCommand(versionCmd)

	config.BindFlags(rootCmd)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
