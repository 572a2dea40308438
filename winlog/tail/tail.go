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

// Package tail drives the polling loop around a live event log
// subscription: retry when the source runs dry, skip events that fail to
// process, stop when the subscription itself fails. The loop is expressed
// against a small Source interface so it can run against fakes on any
// platform.
package tail

import (
	"context"
	"time"

	"github.com/golang/glog"
	"golang.org/x/time/rate"

	"github.com/winlogkit/winevents/winlog"
)

// Source is one open subscription. winlog.Reader implements Source on
// Windows; package faketail provides portable test doubles.
type Source interface {
	// Next returns one event, winlog.ErrNoMoreLogs when nothing is
	// currently available, or a fatal error.
	Next() (*winlog.LogEvent, error)
	// Bookmark exports the current resume position as an opaque blob.
	Bookmark() (string, error)
	// Close releases the source.
	Close() error
}

// Handler consumes one event. Returning an error stops the tailer.
type Handler func(*winlog.LogEvent) error

// Config tunes a Tailer.
type Config struct {
	// Polls caps how often Next is retried after the source runs dry.
	// Defaults to one poll per second. Successive events are drained
	// without pacing.
	Polls rate.Limit
	// Checkpoint, when set, receives the exported bookmark after every
	// handled event. Returning an error stops the tailer.
	Checkpoint func(bookmark string) error
}

// Tailer repeatedly pulls events from a Source and hands them to a
// Handler. A Tailer drives a single Source and must not be shared across
// goroutines.
type Tailer struct {
	source     Source
	limiter    *rate.Limiter
	checkpoint func(string) error
}

// New returns a Tailer reading from source.
func New(source Source, config Config) *Tailer {
	limit := config.Polls
	if limit == 0 {
		limit = rate.Every(time.Second)
	}
	return &Tailer{
		source:     source,
		limiter:    rate.NewLimiter(limit, 1),
		checkpoint: config.Checkpoint,
	}
}

// Run pulls events until ctx is canceled or the subscription fails.
// Event scoped failures are logged and skipped; an empty poll waits for
// the limiter before retrying.
func (t *Tailer) Run(ctx context.Context, handle Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		event, err := t.source.Next()
		if err != nil {
			if winlog.IsNoMoreLogs(err) {
				if werr := t.limiter.Wait(ctx); werr != nil {
					return werr
				}
				continue
			}
			if kind, ok := winlog.KindOf(err); ok && kind == winlog.KindEvent {
				glog.Warningf("tail: skipping event: %v", err)
				continue
			}
			return err
		}

		if err := handle(event); err != nil {
			return err
		}

		if t.checkpoint != nil {
			bookmark, err := t.source.Bookmark()
			if err != nil {
				glog.Warningf("tail: exporting bookmark: %v", err)
				continue
			}
			if err := t.checkpoint(bookmark); err != nil {
				return err
			}
		}
	}
}
