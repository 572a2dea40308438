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
	"github.com/spf13/cobra"

	"github.com/winlogkit/winevents/winlog"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Compile the configured filters and print the query document",
	Long: `query compiles the filters from the config file into the structured
XML query document a subscription would use, and prints it. Useful for
checking what a filter actually selects before tailing with it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := configuredSpecs()
		if err != nil {
			return err
		}
		if len(specs) == 0 {
			cmd.Println(winlog.DefaultQuery)
			return nil
		}
		cmd.Println(winlog.BuildQuery(specs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
