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
	"time"

	"github.com/spf13/cobra"
)

var (
	tailFromOldest   bool
	tailBookmarkFile string
	tailInterval     time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow events matching the configured filters",
	Long: `tail subscribes to the channels named by the configured filters and
prints matching events as they arrive, until interrupted.

By default only events logged after the subscription starts are shown.
Pass --from-oldest to replay retained events first, or --bookmark-file
to persist the position and resume from it on the next run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTail(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().BoolVar(&tailFromOldest, "from-oldest", false, "Replay retained events before following new ones")
	tailCmd.Flags().StringVar(&tailBookmarkFile, "bookmark-file", "", "File used to persist and resume the subscription position")
	tailCmd.Flags().DurationVar(&tailInterval, "interval", time.Second, "Poll pacing while the subscription is idle")
}
