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
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Output selects the representation DecodeXML (and therefore Reader.Next)
// produces. It is fixed for the lifetime of a Reader.
type Output int

const (
	// OutputParsed yields the flattened Event record.
	OutputParsed Output = iota
	// OutputXML yields the rendered XML document unchanged.
	OutputXML
	// OutputRaw yields the typed RawEvent record.
	OutputRaw
	// OutputJSON yields the flattened record serialized to JSON.
	OutputJSON
)

func (o Output) String() string {
	switch o {
	case OutputParsed:
		return "parsed"
	case OutputXML:
		return "xml"
	case OutputRaw:
		return "raw"
	case OutputJSON:
		return "json"
	}
	return fmt.Sprintf("Output(%d)", int(o))
}

// ParseOutput maps an output mode name to its Output.
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(s) {
	case "parsed":
		return OutputParsed, nil
	case "xml":
		return OutputXML, nil
	case "raw":
		return OutputRaw, nil
	case "json":
		return OutputJSON, nil
	}
	return 0, fmt.Errorf("unknown output mode %q", s)
}

// LogEvent is the result of consuming one event. Exactly one of the value
// fields is populated, keyed by Output.
type LogEvent struct {
	Output Output
	XML    string
	Raw    *RawEvent
	Parsed *Event
	JSON   []byte
}

// DecodeXML converts a rendered event document into the requested output
// representation.
func DecodeXML(xmlText string, mode Output) (*LogEvent, error) {
	switch mode {
	case OutputXML:
		return &LogEvent{Output: OutputXML, XML: xmlText}, nil
	case OutputRaw:
		raw, err := ParseRawEvent(xmlText)
		if err != nil {
			return nil, err
		}
		return &LogEvent{Output: OutputRaw, Raw: raw}, nil
	case OutputParsed:
		raw, err := ParseRawEvent(xmlText)
		if err != nil {
			return nil, err
		}
		return &LogEvent{Output: OutputParsed, Parsed: raw.Flatten()}, nil
	case OutputJSON:
		raw, err := ParseRawEvent(xmlText)
		if err != nil {
			return nil, err
		}
		buf, err := json.Marshal(raw.Flatten())
		if err != nil {
			return nil, eventError("serializing event", err)
		}
		return &LogEvent{Output: OutputJSON, JSON: buf}, nil
	}
	return nil, eventError(fmt.Sprintf("unsupported output mode %d", int(mode)), nil)
}
