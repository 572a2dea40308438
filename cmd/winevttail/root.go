// Copyright 2024 The winevents Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "winevttail",
	Short: "Follow the Windows Event Log from the command line",
	Long: `winevttail compiles declarative filters into an Event Log query,
subscribes to the matching channels and follows them like tail -f.

Filters live in the config file (default ~/.winevttail.yaml):

  filters:
    - channel: Application
      levels: [Information, Warning]
      event_ids: "1,16384,-3433,100-200"
      ignore_older: 12h
    - channel: Security
      providers: [Microsoft-Windows-Security-Auditing]
  output: parsed

With no filters configured, the subscription falls back to everything in
the Application, Security and System channels.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.winevttail.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output mode: parsed, xml, raw or json")
	if err := viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".winevttail")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WINEVTTAIL")
	viper.AutomaticEnv()
	viper.SetDefault("output", "parsed")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "reading config file: %v\n", err)
		}
	}
}
