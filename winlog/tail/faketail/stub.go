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

package faketail

import (
	"github.com/pkg/errors"

	"github.com/winlogkit/winevents/winlog"
	"github.com/winlogkit/winevents/winlog/tail"
)

var _ tail.Source = (*Stub)(nil)

// Result is one canned Next outcome.
type Result struct {
	Event *winlog.LogEvent
	Err   error
}

// Stub replays canned results, for driving a tail.Tailer through specific
// event and error sequences.
type Stub struct {
	// Results is consumed front to back; when exhausted, Next fails with
	// a subscription error so runaway loops terminate.
	Results []Result
	// BookmarkValue and BookmarkErr are returned by every Bookmark call.
	BookmarkValue string
	BookmarkErr   error
	// CloseErr is returned by Close; Closed records that it was called.
	CloseErr error
	Closed   bool
}

// Next implements tail.Source.
func (s *Stub) Next() (*winlog.LogEvent, error) {
	if len(s.Results) == 0 {
		return nil, &winlog.Error{Kind: winlog.KindSubscription, Msg: "stub exhausted", Err: errors.New("quit now")}
	}
	r := s.Results[0]
	s.Results = s.Results[1:]
	return r.Event, r.Err
}

// Bookmark implements tail.Source.
func (s *Stub) Bookmark() (string, error) {
	if s.BookmarkErr != nil {
		return "", s.BookmarkErr
	}
	return s.BookmarkValue, nil
}

// Close implements tail.Source.
func (s *Stub) Close() error {
	s.Closed = true
	return s.CloseErr
}
