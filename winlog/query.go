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
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultQuery selects every event on the channels that exist on all
// Windows machines.
const DefaultQuery = `<QueryList><Query Id="0">` +
	`<Select Path="Application">*</Select>` +
	`<Select Path="Security">*</Select>` +
	`<Select Path="System">*</Select>` +
	`</Query></QueryList>`

// FilterSpec selects events from a single channel. Channel is required; the
// remaining fields are optional and combine with logical AND. Separate
// specs are independent alternatives in the compiled query.
type FilterSpec struct {
	// Channel is the log stream to read, e.g. "Application".
	Channel string
	// Levels restricts matches to the given severities. Selecting
	// LevelInformation also matches LevelLogAlways events, because the
	// service logs "always" events at level 0 and the viewer's own filters
	// widen Information the same way.
	Levels []Level
	// EventIDs is a comma separated list of event ids and id ranges
	// ("start-end", start < end). Entries prefixed with '-' are excluded
	// from the result set regardless of the other fields. Malformed
	// entries are dropped.
	EventIDs string
	// IgnoreOlder drops events older than the given age.
	IgnoreOlder time.Duration
	// Providers restricts matches to events emitted by the named providers.
	Providers []string
}

// QueryList is the root node for the defined Query schema.
// https://learn.microsoft.com/en-us/windows/win32/wes/queryschema-schema
type QueryList struct {
	Select   []Select   `xml:"Query>Select"`
	Suppress []Suppress `xml:"Query>Suppress"`
}

// Select is an XPath query that identifies events to include in the query
// result set.
type Select struct {
	Path string `xml:"Path,attr"`
	Text string `xml:",chardata"`
}

// Suppress is an XPath query that unconditionally excludes events from the
// result set, even when a Select on the same channel matches them.
type Suppress struct {
	Path string `xml:"Path,attr"`
	Text string `xml:",chardata"`
}

// BuildQuery compiles filter specs into a structured XML query document
// accepted by EvtSubscribe. The compilation is deterministic and never
// fails; malformed event id tokens are silently dropped.
// https://learn.microsoft.com/en-us/windows/win32/wes/queryschema-schema
func BuildQuery(specs []FilterSpec) string {
	var b strings.Builder
	b.WriteString(`<QueryList><Query Id="0">`)
	for _, s := range specs {
		writeSpec(&b, s)
	}
	b.WriteString(`</Query></QueryList>`)
	return b.String()
}

func writeSpec(b *strings.Builder, s FilterSpec) {
	var clauses []string
	if len(s.Providers) > 0 {
		clauses = append(clauses, providerClause(s.Providers))
	}
	if len(s.Levels) > 0 {
		clauses = append(clauses, levelClause(s.Levels))
	}
	if s.EventIDs != "" {
		if c := eventIDClause(includeTerms(s.EventIDs)); c != "" {
			clauses = append(clauses, c)
		}
	}
	if s.IgnoreOlder > 0 {
		clauses = append(clauses, fmt.Sprintf("TimeCreated[timediff(@SystemTime) &lt;= %d]", s.IgnoreOlder.Milliseconds()))
	}

	var cond string
	if len(clauses) > 0 {
		cond = fmt.Sprintf("[System[%s]]", strings.Join(clauses, " and "))
	}
	fmt.Fprintf(b, `<Select Path=%q>*%s</Select>`, s.Channel, cond)

	// Exclusions apply regardless of the level, provider and age filters
	// on the same spec.
	if c := eventIDClause(excludeTerms(s.EventIDs)); c != "" {
		fmt.Fprintf(b, `<Suppress Path=%q>*[System[%s]]</Suppress>`, s.Channel, c)
	}
}

// providerClause matches events emitted by any of the named providers, e.g.
// Provider[@Name='Microsoft-Windows-Security-Auditing' or @Name='EapHost'].
func providerClause(providers []string) string {
	terms := make([]string, len(providers))
	for i, p := range providers {
		terms[i] = fmt.Sprintf("@Name='%s'", p)
	}
	return "Provider[" + strings.Join(terms, " or ") + "]"
}

// levelClause matches events at any of the given levels, widening
// Information to also match LogAlways. Repetition is harmless, the terms
// are a disjunction.
func levelClause(levels []Level) string {
	terms := make([]string, 0, len(levels)+1)
	widen := false
	for _, l := range levels {
		terms = append(terms, fmt.Sprintf("Level=%d", int(l)))
		if l == LevelInformation {
			widen = true
		}
	}
	if widen {
		terms = append(terms, fmt.Sprintf("Level=%d", int(LevelLogAlways)))
	}
	return "(" + strings.Join(terms, " or ") + ")"
}

func includeTerms(selector string) []string {
	var terms []string
	for _, t := range strings.Split(selector, ",") {
		if !strings.HasPrefix(t, "-") {
			terms = append(terms, t)
		}
	}
	return terms
}

func excludeTerms(selector string) []string {
	var terms []string
	for _, t := range strings.Split(selector, ",") {
		if strings.HasPrefix(t, "-") {
			terms = append(terms, strings.TrimPrefix(t, "-"))
		}
	}
	return terms
}

// eventIDClause builds a disjunction of id and range terms, e.g.
// (EventID=2 or (EventID &gt;= 7 and EventID &lt;= 80)). Terms that are
// neither a non-negative integer nor a strictly increasing range are
// dropped. Returns "" when nothing parses.
func eventIDClause(terms []string) string {
	var parsed []string
	for _, t := range terms {
		if id, err := strconv.ParseUint(t, 10, 32); err == nil {
			parsed = append(parsed, fmt.Sprintf("EventID=%d", id))
			continue
		}
		bounds := strings.Split(t, "-")
		if len(bounds) != 2 {
			continue
		}
		start, serr := strconv.ParseUint(bounds[0], 10, 32)
		end, eerr := strconv.ParseUint(bounds[1], 10, 32)
		if serr != nil || eerr != nil || start >= end {
			continue
		}
		parsed = append(parsed, fmt.Sprintf("(EventID &gt;= %d and EventID &lt;= %d)", start, end))
	}
	if len(parsed) == 0 {
		return ""
	}
	return "(" + strings.Join(parsed, " or ") + ")"
}
