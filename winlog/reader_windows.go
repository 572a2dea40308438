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

//go:build windows
// +build windows

package winlog

import (
	"syscall"

	"github.com/golang/glog"
	"golang.org/x/sys/windows"

	"github.com/winlogkit/winevents/winlog/wevtapi"
)

// nextTimeoutMS bounds how long a single Next call blocks inside EvtNext.
const nextTimeoutMS = 500

// StartMode controls where a new subscription begins reading when no
// bookmark is materialized.
type StartMode int

const (
	// StartAtNewest delivers only events logged after the subscription
	// opened.
	StartAtNewest StartMode = iota
	// StartAtOldest first replays every event still retained on the
	// subscribed channels.
	StartAtOldest
)

// ReaderConfig configures Open.
type ReaderConfig struct {
	// Start selects where consumption begins. Ignored when Bookmark is
	// set and materializes successfully.
	Start StartMode
	// Query is a compiled query document, typically built with BuildQuery.
	// DefaultQuery is used when empty.
	Query string
	// Bookmark optionally resumes consumption after a position previously
	// exported with Reader.Bookmark. A bookmark that fails to materialize
	// is logged and ignored rather than failing Open.
	Bookmark string
	// Output fixes the representation Next returns for the lifetime of
	// the reader.
	Output Output
}

// Reader is a pull style consumer of one live Event Log subscription. It
// owns a signal event, the subscription handle and a bookmark handle, and
// releases all three on Close. A Reader is not safe for concurrent use;
// callers must serialize access.
type Reader struct {
	signal       windows.Handle
	subscription windows.Handle
	bookmark     windows.Handle
	publishers   map[string]windows.Handle
	output       Output
}

// Open starts a subscription and returns a Reader positioned according to
// the config. Close must be called on the returned Reader when finished.
func Open(config ReaderConfig) (*Reader, error) {
	flags := uint32(wevtapi.EvtSubscribeToFutureEvents)
	if config.Start == StartAtOldest {
		flags = wevtapi.EvtSubscribeStartAtOldestRecord
	}

	var bookmark windows.Handle
	if config.Bookmark != "" {
		b, err := wevtapi.EvtCreateBookmark(syscall.StringToUTF16Ptr(config.Bookmark))
		if err != nil {
			// A corrupt bookmark downgrades to the requested start mode
			// instead of failing the subscription.
			glog.Warningf("winlog: cannot materialize stored bookmark, starting at the configured position instead: %v", err)
		} else {
			bookmark = b
			flags = wevtapi.EvtSubscribeStartAfterBookmark
		}
	}

	query := config.Query
	if query == "" {
		query = DefaultQuery
	}
	queryPtr, err := syscall.UTF16PtrFromString(query)
	if err != nil {
		Close(bookmark)
		return nil, subscriptionError("encoding query", err)
	}

	signal, err := windows.CreateEvent(nil, 0, 1, nil)
	if err != nil {
		Close(bookmark)
		return nil, subscriptionError("creating signal event", err)
	}

	subscription, err := wevtapi.EvtSubscribe(localMachine, signal, nil, queryPtr, bookmark, mustBeZero, 0, flags)
	if err != nil {
		windows.CloseHandle(signal)
		Close(bookmark)
		return nil, subscriptionError("opening events subscription", err)
	}

	// Without a materialized bookmark, create an empty one to track
	// progress from here on.
	if bookmark == 0 {
		bookmark, err = wevtapi.EvtCreateBookmark(nil)
		if err != nil {
			windows.CloseHandle(signal)
			Close(subscription)
			return nil, subscriptionError("creating bookmark handle", err)
		}
	}

	return &Reader{
		signal:       signal,
		subscription: subscription,
		bookmark:     bookmark,
		publishers:   make(map[string]windows.Handle),
		output:       config.Output,
	}, nil
}

// Next blocks for up to 500 ms waiting for one event, advances the bookmark
// past it, renders it and converts it to the configured output form.
// ErrNoMoreLogs means nothing arrived within the interval; callers are
// expected to back off and call Next again. Errors of KindEvent are scoped
// to the skipped event, errors of KindSubscription mean the subscription is
// no longer usable.
func (r *Reader) Next() (*LogEvent, error) {
	event, err := r.nextEvent()
	if err != nil {
		return nil, err
	}

	xmlText, perr := r.processEvent(event)
	// The event handle must not outlive this call, whether or not
	// processing succeeded.
	Close(event)
	if perr != nil {
		return nil, perr
	}
	return DecodeXML(xmlText, r.output)
}

// nextEvent pulls a single event handle from the subscription, classifying
// the empty result codes as ErrNoMoreLogs.
func (r *Reader) nextEvent() (windows.Handle, error) {
	var events [1]windows.Handle
	var returned uint32
	err := wevtapi.EvtNext(r.subscription, 1, &events[0], nextTimeoutMS, mustBeZero, &returned)
	if err == nil {
		return events[0], nil
	}
	switch err {
	case windows.ERROR_TIMEOUT, windows.ERROR_NO_MORE_ITEMS, windows.ERROR_INVALID_OPERATION:
		// Routine while tailing a live channel. ERROR_INVALID_OPERATION is
		// how some Windows versions report an empty read, see
		// https://github.com/elastic/beats/issues/3076#issuecomment-264449775
		return 0, ErrNoMoreLogs
	case syscall.EINVAL:
		// An empty read without a last-error code set.
		return 0, ErrNoMoreLogs
	}
	return 0, subscriptionError("getting next windows logs event", err)
}

// processEvent advances the bookmark past the event and renders it to XML
// with message strings expanded.
func (r *Reader) processEvent(event windows.Handle) (string, error) {
	// Advance before rendering: the bookmark must never point past an
	// event that was not handed to the caller, and a delivered event must
	// never be re-delivered after a resume.
	if err := wevtapi.EvtUpdateBookmark(r.bookmark, event); err != nil {
		return "", eventError("updating bookmark", err)
	}

	// Best effort provider lookup; without it the message template text is
	// rendered unexpanded.
	var metadata windows.Handle
	if xmlText, err := RenderFragment(event, wevtapi.EvtRenderEventXml); err == nil {
		if name := providerName(xmlText); name != "" {
			metadata = r.publisherMetadata(name)
		}
	}

	return formatEventMessage(metadata, event, wevtapi.EvtFormatMessageXml)
}

// publisherMetadata returns a cached metadata handle for the provider,
// opening it on first use. Providers without registered metadata map to the
// zero handle so the lookup is not retried on every event.
func (r *Reader) publisherMetadata(name string) windows.Handle {
	if h, ok := r.publishers[name]; ok {
		return h
	}
	h, err := OpenPublisherMetadata(localMachine, name, 0)
	if err != nil {
		glog.V(1).Infof("winlog: no publisher metadata for %q: %v", name, err)
		h = 0
	}
	r.publishers[name] = h
	return h
}

// Bookmark exports the current position as an opaque XML blob. Supplying
// it to a later Open resumes strictly after the last event Next returned.
func (r *Reader) Bookmark() (string, error) {
	return RenderFragment(r.bookmark, wevtapi.EvtRenderBookmark)
}

// Close releases the signal, subscription and bookmark handles, in that
// order, followed by any cached publisher metadata handles. Close is
// idempotent and safe on partially initialized readers.
func (r *Reader) Close() (err error) {
	if r.signal != 0 {
		if e := windows.CloseHandle(r.signal); e != nil {
			err = e
		}
		r.signal = 0
	}
	if r.subscription != 0 {
		if e := Close(r.subscription); e != nil {
			err = e
		}
		r.subscription = 0
	}
	if r.bookmark != 0 {
		if e := Close(r.bookmark); e != nil {
			err = e
		}
		r.bookmark = 0
	}
	for name, h := range r.publishers {
		if e := Close(h); e != nil {
			err = e
		}
		delete(r.publishers, name)
	}
	return err
}
