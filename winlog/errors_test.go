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
	"testing"
)

func TestErrorMessageFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "message with cause",
			err:  eventError("updating bookmark", errors.New("Access is denied.")),
			want: "updating bookmark - (Access is denied.)",
		},
		{
			name: "message without cause",
			err:  subscriptionError("creating signal event", nil),
			want: "creating signal event",
		},
		{
			name: "bare kind",
			err:  ErrNoMoreLogs,
			want: "no more logs to pull",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNoMoreLogs(t *testing.T) {
	if !IsNoMoreLogs(ErrNoMoreLogs) {
		t.Error("IsNoMoreLogs(ErrNoMoreLogs) = false, want true")
	}
	if !errors.Is(fmt.Errorf("polling: %w", ErrNoMoreLogs), ErrNoMoreLogs) {
		t.Error("errors.Is() does not match a wrapped ErrNoMoreLogs")
	}
	if IsNoMoreLogs(eventError("updating bookmark", nil)) {
		t.Error("IsNoMoreLogs() matched an event error")
	}
	if IsNoMoreLogs(errors.New("boom")) {
		t.Error("IsNoMoreLogs() matched a foreign error")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     Kind
		wantKind bool
	}{
		{"event", eventError("rendering fragment", nil), KindEvent, true},
		{"subscription", subscriptionError("opening subscription", nil), KindSubscription, true},
		{"no more logs", ErrNoMoreLogs, KindNoMoreLogs, true},
		{"wrapped", fmt.Errorf("next: %w", eventError("parsing event xml", nil)), KindEvent, true},
		{"foreign", errors.New("boom"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindOf(tt.err)
			if ok != tt.wantKind || (ok && got != tt.want) {
				t.Errorf("KindOf(%v) = %v, %v, want %v, %v", tt.err, got, ok, tt.want, tt.wantKind)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("The handle is invalid.")
	err := subscriptionError("opening events subscription", cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is() does not reach the wrapped OS error")
	}
}
