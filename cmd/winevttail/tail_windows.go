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

//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/winlogkit/winevents/winlog"
	"github.com/winlogkit/winevents/winlog/tail"
)

func runTail(cmd *cobra.Command) error {
	specs, err := configuredSpecs()
	if err != nil {
		return err
	}
	mode, err := configuredOutput()
	if err != nil {
		return err
	}
	specs = dropUnknownChannels(specs)

	query := winlog.DefaultQuery
	if len(specs) > 0 {
		query = winlog.BuildQuery(specs)
	}

	var bookmark string
	if tailBookmarkFile != "" {
		b, err := os.ReadFile(tailBookmarkFile)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "reading bookmark file")
		}
		bookmark = string(b)
	}

	start := winlog.StartAtNewest
	if tailFromOldest {
		start = winlog.StartAtOldest
	}

	reader, err := winlog.Open(winlog.ReaderConfig{
		Start:    start,
		Query:    query,
		Bookmark: bookmark,
		Output:   mode,
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := tail.Config{Polls: rate.Every(tailInterval)}
	if tailBookmarkFile != "" {
		cfg.Checkpoint = func(bookmark string) error {
			return os.WriteFile(tailBookmarkFile, []byte(bookmark), 0644)
		}
	}

	err = tail.New(reader, cfg).Run(ctx, func(e *winlog.LogEvent) error {
		printEvent(cmd.OutOrStdout(), e)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// dropUnknownChannels removes filters for channels the machine does not
// have, so one typo does not fail the whole subscription. If enumeration
// itself fails the filters pass through unchecked.
func dropUnknownChannels(specs []winlog.FilterSpec) []winlog.FilterSpec {
	channels, err := winlog.AvailableChannels()
	if err != nil {
		glog.Warningf("Cannot enumerate channels, subscribing unchecked: %v", err)
		return specs
	}
	lowered := make([]string, 0, len(channels))
	for _, c := range channels {
		lowered = append(lowered, strings.ToLower(c))
	}
	known := stringset.New(lowered...)

	kept := specs[:0]
	for _, s := range specs {
		if !known.Contains(strings.ToLower(s.Channel)) {
			glog.Warningf("Ignoring filter for non-existent channel %q", s.Channel)
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
