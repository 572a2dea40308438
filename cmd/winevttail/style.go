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
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/winlogkit/winevents/winlog"
)

var levelStyles = map[string]lipgloss.Style{
	"Critical":    lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	"Error":       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	"Warning":     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	"Information": lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	"Verbose":     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// printEvent writes one event in its configured representation. Parsed
// events become a colored one-line summary; the other modes print the
// serialized form as is.
func printEvent(w io.Writer, e *winlog.LogEvent) {
	switch e.Output {
	case winlog.OutputXML:
		fmt.Fprintln(w, e.XML)
	case winlog.OutputRaw:
		fmt.Fprintf(w, "%+v\n", e.Raw)
	case winlog.OutputJSON:
		fmt.Fprintln(w, string(e.JSON))
	default:
		fmt.Fprintln(w, formatParsed(e.Parsed))
	}
}

func formatParsed(e *winlog.Event) string {
	var b strings.Builder
	if e.SystemTime != nil {
		b.WriteString(e.SystemTime.Format(time.RFC3339))
		b.WriteByte(' ')
	}

	level := e.Level
	if level == "" {
		level = "Unknown"
	}
	if style, ok := levelStyles[level]; ok {
		level = style.Render(level)
	}
	b.WriteString(level)

	fmt.Fprintf(&b, " %s/%s [%d]", e.Channel, e.ProviderName, e.EventID)

	msg := strings.TrimSpace(e.Message)
	if msg != "" {
		// Multi-line descriptions collapse to their first line.
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = strings.TrimSpace(msg[:i])
		}
		b.WriteByte(' ')
		b.WriteString(msg)
	}
	return b.String()
}
