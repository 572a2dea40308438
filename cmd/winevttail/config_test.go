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
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/winlogkit/winevents/winlog"
)

func TestFilterSpecs(t *testing.T) {
	configs := []filterConfig{
		{
			Channel:     "Application",
			Levels:      []string{"information", "Warning"},
			EventIDs:    "1,100-200",
			IgnoreOlder: 12 * time.Hour,
		},
		{
			Channel:   "Security",
			Providers: []string{"Microsoft-Windows-Security-Auditing"},
		},
	}

	want := []winlog.FilterSpec{
		{
			Channel:     "Application",
			Levels:      []winlog.Level{winlog.LevelInformation, winlog.LevelWarning},
			EventIDs:    "1,100-200",
			IgnoreOlder: 12 * time.Hour,
		},
		{
			Channel:   "Security",
			Providers: []string{"Microsoft-Windows-Security-Auditing"},
		},
	}

	got, err := filterSpecs(configs)
	if err != nil {
		t.Fatalf("filterSpecs() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filterSpecs() returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestFilterSpecsRequiresChannel(t *testing.T) {
	_, err := filterSpecs([]filterConfig{{Levels: []string{"Error"}}})
	if err == nil {
		t.Fatal("filterSpecs() with no channel succeeded, want error")
	}
}

func TestFilterSpecsRejectsUnknownLevel(t *testing.T) {
	_, err := filterSpecs([]filterConfig{{Channel: "Application", Levels: []string{"Loud"}}})
	if err == nil {
		t.Fatal("filterSpecs() with unknown level succeeded, want error")
	}
	if !strings.Contains(err.Error(), "Application") {
		t.Errorf("filterSpecs() error = %v, want the channel named", err)
	}
}

func TestFilterSpecsEmpty(t *testing.T) {
	got, err := filterSpecs(nil)
	if err != nil {
		t.Fatalf("filterSpecs() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("filterSpecs(nil) = %v, want empty", got)
	}
}

func TestFormatParsed(t *testing.T) {
	ts := time.Date(2024, 5, 4, 10, 11, 12, 0, time.UTC)
	event := &winlog.Event{
		SystemTime:   &ts,
		Level:        "Audit Success",
		Channel:      "Security",
		ProviderName: "Microsoft-Windows-Security-Auditing",
		EventID:      4624,
		Message:      "An account was successfully logged on.\n\nSubject:\n\tSecurity ID:  S-1-5-18",
	}

	// "Audit Success" has no style entry, so the line is plain text.
	want := "2024-05-04T10:11:12Z Audit Success Security/Microsoft-Windows-Security-Auditing [4624] " +
		"An account was successfully logged on."
	if got := formatParsed(event); got != want {
		t.Errorf("formatParsed() = %q, want %q", got, want)
	}
}

func TestFormatParsedDefaults(t *testing.T) {
	got := formatParsed(&winlog.Event{Channel: "Application", ProviderName: "MsiInstaller", EventID: 1033})
	want := "Unknown Application/MsiInstaller [1033]"
	if got != want {
		t.Errorf("formatParsed() = %q, want %q", got, want)
	}
}
