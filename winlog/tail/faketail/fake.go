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

// Package faketail provides in-memory tail.Source implementations for
// exercising polling loops without a Windows Event Log service.
package faketail

import (
	"encoding/gob"
	"sort"
	"strings"

	"github.com/winlogkit/winevents/winlog"
	"github.com/winlogkit/winevents/winlog/tail"
)

var _ tail.Source = (*Fake)(nil)

// Fake is an in-memory Source. Rendered event documents are grouped per
// channel and consumed through per-channel cursors in channel name order.
// Bookmark gob-encodes the cursors, mirroring how real bookmarks snapshot
// one position per channel. There is no thread safety whatsoever.
type Fake struct {
	// Events holds the rendered documents available per channel. More can
	// be added with Append while the fake is open.
	Events map[string][]string
	// Output is the representation Next produces, OutputXML by default.
	Output winlog.Output

	cursors map[string]int
}

// Open returns a Fake positioned according to bookmark. An empty bookmark
// starts at the oldest event; a bookmark that does not decode degrades to
// a fresh start, matching the non-fatal recovery of the real subscription.
func Open(events map[string][]string, output winlog.Output, bookmark string) *Fake {
	f := &Fake{
		Events:  events,
		Output:  output,
		cursors: make(map[string]int),
	}
	if bookmark != "" {
		if err := gob.NewDecoder(strings.NewReader(bookmark)).Decode(&f.cursors); err != nil {
			f.cursors = make(map[string]int)
		}
	}
	return f
}

// Next returns the next available event, walking channels in name order,
// or winlog.ErrNoMoreLogs when every cursor is exhausted.
func (f *Fake) Next() (*winlog.LogEvent, error) {
	if f.cursors == nil {
		return nil, &winlog.Error{Kind: winlog.KindSubscription, Msg: "source closed"}
	}

	channels := make([]string, 0, len(f.Events))
	for ch := range f.Events {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	for _, ch := range channels {
		cursor := f.cursors[ch]
		if cursor >= len(f.Events[ch]) {
			continue
		}
		f.cursors[ch] = cursor + 1
		return winlog.DecodeXML(f.Events[ch][cursor], f.Output)
	}
	return nil, winlog.ErrNoMoreLogs
}

// Bookmark encodes the current cursors so a later Open resumes strictly
// after the last event Next returned.
func (f *Fake) Bookmark() (string, error) {
	if f.cursors == nil {
		return "", &winlog.Error{Kind: winlog.KindSubscription, Msg: "source closed"}
	}
	var b strings.Builder
	if err := gob.NewEncoder(&b).Encode(f.cursors); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Append adds more events to the fake.
func (f *Fake) Append(events map[string][]string) {
	for ch, docs := range events {
		f.Events[ch] = append(f.Events[ch], docs...)
	}
}

// Close invalidates the fake. Further calls fail with a subscription
// error; Close itself is idempotent.
func (f *Fake) Close() error {
	f.cursors = nil
	return nil
}
