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

package winlog

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/go-cmp/cmp"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		specs []FilterSpec
		want  string
	}{
		{
			name:  "no specs",
			specs: nil,
			want:  `<QueryList><Query Id="0"></Query></QueryList>`,
		},
		{
			name:  "bare channel selects everything",
			specs: []FilterSpec{{Channel: "System"}},
			want:  `<QueryList><Query Id="0"><Select Path="System">*</Select></Query></QueryList>`,
		},
		{
			name: "levels only",
			specs: []FilterSpec{{
				Channel: "Application",
				Levels:  []Level{LevelCritical, LevelError},
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">*[System[(Level=1 or Level=2)]]</Select></Query></QueryList>`,
		},
		{
			name: "information widens to log always",
			specs: []FilterSpec{{
				Channel: "Application",
				Levels:  []Level{LevelInformation, LevelWarning},
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">*[System[(Level=4 or Level=3 or Level=0)]]</Select></Query></QueryList>`,
		},
		{
			name: "providers",
			specs: []FilterSpec{{
				Channel:   "Application",
				Providers: []string{".NET Runtime", "EapHost"},
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">*[System[Provider[@Name='.NET Runtime' or @Name='EapHost']]]</Select></Query></QueryList>`,
		},
		{
			name: "ignore older is emitted in milliseconds",
			specs: []FilterSpec{{
				Channel:     "Application",
				IgnoreOlder: 43200 * time.Second,
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">*[System[TimeCreated[timediff(@SystemTime) &lt;= 43200000]]]</Select></Query></QueryList>`,
		},
		{
			name: "event id selector with exclusions",
			specs: []FilterSpec{{
				Channel:  "Application",
				EventIDs: "1,16384,-3433,100-200,-300-400",
			}},
			want: `<QueryList><Query Id="0">` +
				`<Select Path="Application">*[System[(EventID=1 or EventID=16384 or (EventID &gt;= 100 and EventID &lt;= 200))]]</Select>` +
				`<Suppress Path="Application">*[System[(EventID=3433 or (EventID &gt;= 300 and EventID &lt;= 400))]]</Suppress>` +
				`</Query></QueryList>`,
		},
		{
			name: "malformed and inverted ids are dropped",
			specs: []FilterSpec{{
				Channel:  "Application",
				EventIDs: "200-100,banana,5,7-7,-x",
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">*[System[(EventID=5)]]</Select></Query></QueryList>`,
		},
		{
			name: "selector with nothing parsable selects everything",
			specs: []FilterSpec{{
				Channel:  "Application",
				EventIDs: "banana,-oops",
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">*</Select></Query></QueryList>`,
		},
		{
			name: "all clauses joined with and",
			specs: []FilterSpec{{
				Channel:     "Application",
				Levels:      []Level{LevelError},
				EventIDs:    "7-80",
				IgnoreOlder: time.Second,
				Providers:   []string{"MsiInstaller"},
			}},
			want: `<QueryList><Query Id="0"><Select Path="Application">` +
				`*[System[Provider[@Name='MsiInstaller'] and (Level=2) and ((EventID &gt;= 7 and EventID &lt;= 80)) and TimeCreated[timediff(@SystemTime) &lt;= 1000]]]` +
				`</Select></Query></QueryList>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.specs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildQuery() returned unexpected diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildQueryDeterministic(t *testing.T) {
	specs := []FilterSpec{
		{Channel: "Application", Levels: []Level{LevelInformation}, EventIDs: "1,2,3-9", Providers: []string{"a", "b"}},
		{Channel: "Security", IgnoreOlder: time.Hour},
	}
	first := BuildQuery(specs)
	for i := 0; i < 10; i++ {
		if got := BuildQuery(specs); got != first {
			t.Fatalf("BuildQuery() is not deterministic: %q != %q", got, first)
		}
	}
}

func TestBuildQueryChannelsAreIndependent(t *testing.T) {
	specs := []FilterSpec{
		{Channel: "Application", EventIDs: "1,16384,-3433", Levels: []Level{LevelInformation, LevelWarning}},
		{Channel: "Security", Levels: []Level{LevelError, LevelInformation}},
	}

	var q QueryList
	if err := xml.Unmarshal([]byte(BuildQuery(specs)), &q); err != nil {
		t.Fatalf("compiled query is not well formed XML: %v", err)
	}

	var selectPaths []string
	for _, s := range q.Select {
		selectPaths = append(selectPaths, s.Path)
	}
	if !stringset.New(selectPaths...).Contains("Application", "Security") {
		t.Errorf("Select paths = %v, must contain Application and Security", selectPaths)
	}

	for _, s := range q.Select {
		switch s.Path {
		case "Application":
			if !strings.Contains(s.Text, "EventID=1") || !strings.Contains(s.Text, "Level=3") {
				t.Errorf("Application select lost its clauses: %q", s.Text)
			}
		case "Security":
			if strings.Contains(s.Text, "EventID") {
				t.Errorf("Security select leaked event id clauses from Application: %q", s.Text)
			}
			if !strings.Contains(s.Text, "Level=2") || !strings.Contains(s.Text, "Level=0") {
				t.Errorf("Security select missing level clause: %q", s.Text)
			}
		}
	}

	if len(q.Suppress) != 1 || q.Suppress[0].Path != "Application" {
		t.Fatalf("Suppress = %+v, want exactly one statement scoped to Application", q.Suppress)
	}
	if !strings.Contains(q.Suppress[0].Text, "EventID=3433") {
		t.Errorf("Suppress text = %q, want it to exclude 3433", q.Suppress[0].Text)
	}
}

func TestBuildQueryOnlyErrorDoesNotWiden(t *testing.T) {
	got := BuildQuery([]FilterSpec{{Channel: "Security", Levels: []Level{LevelError}}})
	if strings.Contains(got, "Level=0") {
		t.Errorf("BuildQuery() = %q, selecting only Error must not include Level=0", got)
	}
}
