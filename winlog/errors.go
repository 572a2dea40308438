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
	"errors"
	"fmt"
)

// Kind classifies the errors returned by this package.
type Kind int

const (
	// KindEvent marks failures scoped to a single already retrieved event:
	// render, parse, serialization or bookmark advance failures. Callers
	// can skip the event and keep polling.
	KindEvent Kind = iota
	// KindSubscription marks failures of the subscription as a whole.
	// Callers should stop consuming.
	KindSubscription
	// KindNoMoreLogs signals that no event is currently available. Not a
	// real failure; callers retry after a delay.
	KindNoMoreLogs
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event error"
	case KindSubscription:
		return "event subscription error"
	case KindNoMoreLogs:
		return "no more logs to pull"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error is the error type returned by Reader operations. Msg is a static
// description of the failing step and Err the originating OS error, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// ErrNoMoreLogs is returned by Next when no event arrived within the poll
// interval. Match it with errors.Is or IsNoMoreLogs.
var ErrNoMoreLogs = &Error{Kind: KindNoMoreLogs}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s - (%v)", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a bare *Error of the same Kind, so that
// errors.Is(err, ErrNoMoreLogs) matches any no-more-logs error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// KindOf returns the Kind carried by err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNoMoreLogs reports whether err signals an empty poll.
func IsNoMoreLogs(err error) bool {
	return errors.Is(err, ErrNoMoreLogs)
}

func eventError(msg string, cause error) *Error {
	return &Error{Kind: KindEvent, Msg: msg, Err: cause}
}

func subscriptionError(msg string, cause error) *Error {
	return &Error{Kind: KindSubscription, Msg: msg, Err: cause}
}
