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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RawEvent mirrors the XML event schema rendered by the Event Log service.
// https://learn.microsoft.com/en-us/windows/win32/wes/eventschema-schema
type RawEvent struct {
	XMLName       xml.Name       `xml:"Event" json:"-"`
	System        System         `xml:"System"`
	EventData     *EventData     `xml:"EventData"`
	UserData      *UserData      `xml:"UserData"`
	RenderingInfo *RenderingInfo `xml:"RenderingInfo"`
}

// System carries the fields the service itself stamps on every event.
type System struct {
	Provider      Provider    `xml:"Provider"`
	EventID       EventID     `xml:"EventID"`
	Version       uint8       `xml:"Version"`
	Level         uint8       `xml:"Level"`
	Task          uint16      `xml:"Task"`
	Opcode        uint8       `xml:"Opcode"`
	Keywords      string      `xml:"Keywords"`
	TimeCreated   TimeCreated `xml:"TimeCreated"`
	EventRecordID uint64      `xml:"EventRecordID"`
	Correlation   Correlation `xml:"Correlation"`
	Execution     Execution   `xml:"Execution"`
	Channel       string      `xml:"Channel"`
	Computer      string      `xml:"Computer"`
	Security      Security    `xml:"Security"`
}

// Provider identifies the component that emitted the event.
type Provider struct {
	Name            string `xml:"Name,attr"`
	GUID            string `xml:"Guid,attr"`
	EventSourceName string `xml:"EventSourceName,attr"`
}

// EventID is the provider scoped event identifier. The value is kept as
// text because legacy providers render qualifiers into it.
type EventID struct {
	Qualifiers string `xml:"Qualifiers,attr"`
	ID         string `xml:",chardata"`
}

// TimeCreated is the creation timestamp in RFC 3339 form.
type TimeCreated struct {
	SystemTime string `xml:"SystemTime,attr"`
}

// Correlation carries the activity ids used to relate events.
type Correlation struct {
	ActivityID        string `xml:"ActivityID,attr"`
	RelatedActivityID string `xml:"RelatedActivityID,attr"`
}

// Execution identifies the process and thread that logged the event.
type Execution struct {
	ProcessID   uint32 `xml:"ProcessID,attr"`
	ThreadID    uint32 `xml:"ThreadID,attr"`
	ProcessorID string `xml:"ProcessorID,attr"`
	SessionID   string `xml:"SessionID,attr"`
}

// Security carries the SID of the logging user, when recorded.
type Security struct {
	UserID string `xml:"UserID,attr"`
}

// EventData is the structured payload of a manifest based event.
type EventData struct {
	Data   []Data `xml:"Data"`
	Binary string `xml:"Binary"`
}

// Data is one named (or positional) payload value.
type Data struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:",chardata"`
}

// UserData is a provider defined payload with arbitrary element names. The
// service wraps the values in a provider specific element; decoding
// collects every leaf element's text keyed by its local name.
type UserData struct {
	Fields map[string]string
}

// UnmarshalXML implements xml.Unmarshaler.
func (u *UserData) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	u.Fields = make(map[string]string)
	var current string
	depth := 1
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			current = t.Name.Local
		case xml.EndElement:
			depth--
			if depth == 0 {
				return nil
			}
			current = ""
		case xml.CharData:
			if current == "" {
				break
			}
			if s := strings.TrimSpace(string(t)); s != "" {
				u.Fields[current] = s
			}
		}
	}
}

// RenderingInfo carries the locale dependent strings resolved from the
// publisher metadata by the message formatting call.
type RenderingInfo struct {
	Message  string   `xml:"Message"`
	Level    string   `xml:"Level"`
	Opcode   string   `xml:"Opcode"`
	Task     string   `xml:"Task"`
	Channel  string   `xml:"Channel"`
	Provider string   `xml:"Provider"`
	Keywords Keywords `xml:"Keywords"`
}

// Keywords is the list of keyword names attached to the event.
type Keywords struct {
	Keyword []string `xml:"Keyword"`
}

// ParseRawEvent decodes one rendered event document.
func ParseRawEvent(xmlText string) (*RawEvent, error) {
	var raw RawEvent
	if err := xml.Unmarshal([]byte(xmlText), &raw); err != nil {
		return nil, eventError("parsing event xml", err)
	}
	return &raw, nil
}

// Event is the flattened, serialization friendly form of a RawEvent.
type Event struct {
	RecordID     uint64     `json:"recordId"`
	ProviderName string     `json:"providerName"`
	ProviderGUID string     `json:"providerGuid"`
	SourceName   string     `json:"sourceName"`
	SystemTime   *time.Time `json:"systemTime"`

	EventID      uint32 `json:"eventId"`
	ComputerName string `json:"computerName"`
	ActivityID   string `json:"activityId"`
	Channel      string `json:"channel"`
	Level        string `json:"level"`
	Opcode       string `json:"opcode"`

	Task    string `json:"task"`
	Message string `json:"message"`

	ProcessID uint32 `json:"processId"`
	ThreadID  uint32 `json:"threadId"`

	User map[string]any `json:"user"`

	Keywords []string `json:"keywords"`

	EventData map[string]string `json:"eventData"`
	UserData  map[string]string `json:"userData"`
}

// Flatten maps the nested record into a single normalized Event. Fields
// without a counterpart in the raw record stay at their zero values; the
// maps are always non-nil.
func (r *RawEvent) Flatten() *Event {
	ev := &Event{
		User:      make(map[string]any),
		EventData: make(map[string]string),
		UserData:  make(map[string]string),
	}

	sys := r.System
	if id, err := strconv.ParseUint(strings.TrimSpace(sys.EventID.ID), 10, 32); err == nil {
		ev.EventID = uint32(id)
	}
	ev.RecordID = sys.EventRecordID
	ev.ComputerName = sys.Computer
	ev.Channel = sys.Channel
	ev.ProcessID = sys.Execution.ProcessID
	ev.ThreadID = sys.Execution.ThreadID
	ev.ProviderName = sys.Provider.Name
	ev.ProviderGUID = canonicalGUID(sys.Provider.GUID)
	ev.SourceName = sys.Provider.EventSourceName
	ev.ActivityID = canonicalGUID(sys.Correlation.ActivityID)

	if t, err := time.Parse(time.RFC3339Nano, sys.TimeCreated.SystemTime); err == nil {
		utc := t.UTC()
		ev.SystemTime = &utc
	}

	if sys.Security.UserID != "" {
		ev.User["identifier"] = sys.Security.UserID
	}

	if ri := r.RenderingInfo; ri != nil {
		ev.Level = ri.Level
		ev.Opcode = ri.Opcode
		ev.Task = ri.Task
		ev.Message = ri.Message
		ev.Keywords = ri.Keywords.Keyword
	}

	if ed := r.EventData; ed != nil {
		for i, d := range ed.Data {
			v := strings.TrimSpace(d.Value)
			if v == "" {
				continue
			}
			name := d.Name
			if name == "" {
				name = fmt.Sprintf("param%d", i)
			}
			ev.EventData[name] = v
		}
		if ed.Binary != "" {
			ev.EventData["binary"] = ed.Binary
		}
	}

	if ud := r.UserData; ud != nil {
		for k, v := range ud.Fields {
			ev.UserData[k] = v
		}
	}

	return ev
}

// canonicalGUID strips the braces the service puts around GUID valued
// fields and lowercases the rest. Values that are not GUIDs pass through
// untouched.
func canonicalGUID(s string) string {
	if s == "" {
		return ""
	}
	if id, err := uuid.Parse(strings.Trim(s, "{}")); err == nil {
		return id.String()
	}
	return s
}

// providerName extracts the Provider Name attribute with a shallow token
// scan, avoiding a full decode when only the metadata lookup key is needed.
func providerName(xmlText string) string {
	d := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		tok, err := d.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Provider" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "Name" {
				return a.Value
			}
		}
		return ""
	}
}
