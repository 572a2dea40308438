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

package tail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/time/rate"

	"github.com/winlogkit/winevents/winlog"
	"github.com/winlogkit/winevents/winlog/tail"
	"github.com/winlogkit/winevents/winlog/tail/faketail"
)

func xmlEvent(doc string) *winlog.LogEvent {
	return &winlog.LogEvent{Output: winlog.OutputXML, XML: doc}
}

func TestRunSkipsEventErrorsAndStopsOnSubscriptionErrors(t *testing.T) {
	fatal := &winlog.Error{Kind: winlog.KindSubscription, Msg: "getting next windows logs event"}
	stub := &faketail.Stub{Results: []faketail.Result{
		{Event: xmlEvent("one")},
		{Err: &winlog.Error{Kind: winlog.KindEvent, Msg: "updating bookmark"}},
		{Event: xmlEvent("two")},
		{Err: fatal},
	}}

	var got []string
	err := tail.New(stub, tail.Config{Polls: rate.Inf}).Run(context.Background(), func(e *winlog.LogEvent) error {
		got = append(got, e.XML)
		return nil
	})
	if !errors.Is(err, fatal) {
		t.Errorf("Run() error = %v, want the subscription error", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, got); diff != "" {
		t.Errorf("handled events returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestRunRetriesEmptyPolls(t *testing.T) {
	stub := &faketail.Stub{Results: []faketail.Result{
		{Err: winlog.ErrNoMoreLogs},
		{Err: winlog.ErrNoMoreLogs},
		{Event: xmlEvent("one")},
		{Err: &winlog.Error{Kind: winlog.KindSubscription, Msg: "done"}},
	}}

	var got []string
	err := tail.New(stub, tail.Config{Polls: rate.Inf}).Run(context.Background(), func(e *winlog.LogEvent) error {
		got = append(got, e.XML)
		return nil
	})
	if kind, ok := winlog.KindOf(err); !ok || kind != winlog.KindSubscription {
		t.Errorf("Run() error = %v, want KindSubscription", err)
	}
	if diff := cmp.Diff([]string{"one"}, got); diff != "" {
		t.Errorf("handled events returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestRunCheckpointsAfterEachEvent(t *testing.T) {
	stub := &faketail.Stub{
		Results: []faketail.Result{
			{Event: xmlEvent("one")},
			{Event: xmlEvent("two")},
			{Err: &winlog.Error{Kind: winlog.KindSubscription, Msg: "done"}},
		},
		BookmarkValue: "<BookmarkList/>",
	}

	var checkpoints []string
	tailer := tail.New(stub, tail.Config{
		Polls: rate.Inf,
		Checkpoint: func(bookmark string) error {
			checkpoints = append(checkpoints, bookmark)
			return nil
		},
	})
	_ = tailer.Run(context.Background(), func(*winlog.LogEvent) error { return nil })

	want := []string{"<BookmarkList/>", "<BookmarkList/>"}
	if diff := cmp.Diff(want, checkpoints); diff != "" {
		t.Errorf("checkpoints returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestRunStopsOnCheckpointError(t *testing.T) {
	persistErr := errors.New("disk full")
	stub := &faketail.Stub{
		Results:       []faketail.Result{{Event: xmlEvent("one")}},
		BookmarkValue: "<BookmarkList/>",
	}

	err := tail.New(stub, tail.Config{
		Polls:      rate.Inf,
		Checkpoint: func(string) error { return persistErr },
	}).Run(context.Background(), func(*winlog.LogEvent) error { return nil })
	if !errors.Is(err, persistErr) {
		t.Errorf("Run() error = %v, want checkpoint error", err)
	}
}

func TestRunStopsOnHandlerError(t *testing.T) {
	handlerErr := errors.New("downstream closed")
	stub := &faketail.Stub{Results: []faketail.Result{{Event: xmlEvent("one")}, {Event: xmlEvent("two")}}}

	err := tail.New(stub, tail.Config{Polls: rate.Inf}).Run(context.Background(), func(*winlog.LogEvent) error {
		return handlerErr
	})
	if !errors.Is(err, handlerErr) {
		t.Errorf("Run() error = %v, want handler error", err)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &faketail.Stub{Results: []faketail.Result{
		{Event: xmlEvent("one")},
		{Event: xmlEvent("two")},
	}}

	err := tail.New(stub, tail.Config{Polls: rate.Inf}).Run(ctx, func(*winlog.LogEvent) error {
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunAgainstFake(t *testing.T) {
	fake := faketail.Open(map[string][]string{
		"Application": {"app1", "app2"},
		"Security":    {"sec1"},
	}, winlog.OutputXML, "")
	defer fake.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var got []string
	tailer := tail.New(fake, tail.Config{Polls: rate.Inf})
	err := tailer.Run(ctx, func(e *winlog.LogEvent) error {
		got = append(got, e.XML)
		if len(got) == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if diff := cmp.Diff([]string{"app1", "app2", "sec1"}, got); diff != "" {
		t.Errorf("handled events returned unexpected diff (-want +got):\n%s", diff)
	}
}
