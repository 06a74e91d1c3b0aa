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

package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BindFlags binds the demo binary's command line flags to viper.
func BindFlags(cmd *cobra.Command) {
	cobra.OnInitialize(func() {
		viper.AutomaticEnv()
		viper.SetEnvPrefix("TYPEBUS")
	})

	cmd.PersistentFlags().String("metrics-listen-address", "", "Address to expose Prometheus metrics on (e.g. :9090). Disabled when empty. Env: TYPEBUS_METRICS_LISTEN_ADDRESS")
	if err := viper.BindPFlag("metrics-listen-address", cmd.PersistentFlags().Lookup("metrics-listen-address")); err != nil {
		fmt.Printf("Error binding metrics-listen-address flag: %v\n", err)
		os.Exit(1)
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging. Env: TYPEBUS_DEBUG")
	cmd.Flags().Int("count", 3, "Number of sample messages the demo publishes. Env: TYPEBUS_COUNT")
	cmd.Flags().String("logfile", "", "Path to a file to write logs to. If not set, logs are written to stdout.")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		fmt.Printf("Error binding command line flags: %v\n", err)
		os.Exit(1)
	}
}

// DemoConfig holds the resolved settings for one run of the demo binary.
type DemoConfig struct {
	Debug       bool
	LogFile     string
	MetricsAddr string
	Count       int
}

// LoadDemoConfig reads the bound flag/env values back from viper.
func LoadDemoConfig() DemoConfig {
	return DemoConfig{
		Debug:       viper.GetBool("debug"),
		LogFile:     viper.GetString("logfile"),
		MetricsAddr: viper.GetString("metrics-listen-address"),
		Count:       viper.GetInt("count"),
	}
}
