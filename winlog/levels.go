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
)

// Level is an event severity class. The numeric values are the level codes
// the Event Log service uses in queries and event records.
// https://learn.microsoft.com/en-us/windows/win32/wes/eventmanifestschema-leveltype-complextype
type Level int

const (
	LevelLogAlways Level = iota
	LevelCritical
	LevelError
	LevelWarning
	LevelInformation
	LevelVerbose
)

var levelNames = map[Level]string{
	LevelLogAlways:   "LogAlways",
	LevelCritical:    "Critical",
	LevelError:       "Error",
	LevelWarning:     "Warning",
	LevelInformation: "Information",
	LevelVerbose:     "Verbose",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel maps a level name, case insensitively, to its Level.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
