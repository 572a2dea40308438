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

// Package winlog compiles event filters into Event Log queries and consumes
// live pull subscriptions from the Windows Event Log service.
package winlog

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/winlogkit/winevents/winlog/wevtapi"
)

const (
	localMachine = 0 // NULL session handle, the local computer
	mustBeZero   = 0 // reserved arguments
)

// SubscribeConfig mirrors the parameters of EvtSubscribe for callers that
// drive the subscription directly instead of through a Reader.
// https://learn.microsoft.com/en-us/windows/win32/api/winevt/nf-winevt-evtsubscribe
type SubscribeConfig struct {
	Session     windows.Handle
	SignalEvent windows.Handle
	ChannelPath *uint16
	Query       *uint16
	Bookmark    windows.Handle
	Context     uintptr
	Callback    uintptr
	Flags       uint32
}

// DefaultSubscribeConfig returns a config that subscribes to future events
// matching DefaultQuery, with a fresh auto-reset signal event created in
// the signaled state.
func DefaultSubscribeConfig() (*SubscribeConfig, error) {
	var c SubscribeConfig
	var err error
	c.SignalEvent, err = windows.CreateEvent(nil, 0, 1, nil)
	if err != nil {
		return nil, subscriptionError("creating signal event", err)
	}
	c.Query, err = syscall.UTF16PtrFromString(DefaultQuery)
	if err != nil {
		windows.CloseHandle(c.SignalEvent)
		return nil, subscriptionError("encoding query", err)
	}
	c.Flags = wevtapi.EvtSubscribeToFutureEvents
	return &c, nil
}

// Close releases the signal event and bookmark handle owned by the config.
// Safe to call more than once.
func (c *SubscribeConfig) Close() (err error) {
	if c.SignalEvent != 0 {
		if e := windows.CloseHandle(c.SignalEvent); e != nil {
			err = e
		} else {
			c.SignalEvent = 0
		}
	}
	if c.Bookmark != 0 {
		if e := Close(c.Bookmark); e != nil {
			err = e
		} else {
			c.Bookmark = 0
		}
	}
	return err
}

// Subscribe opens the subscription described by config and returns its
// handle. Close must be called on the handle when finished.
func Subscribe(config *SubscribeConfig) (windows.Handle, error) {
	h, err := wevtapi.EvtSubscribe(config.Session, config.SignalEvent, config.ChannelPath,
		config.Query, config.Bookmark, config.Context, config.Callback, config.Flags)
	if err != nil {
		return 0, subscriptionError("opening subscription", err)
	}
	return h, nil
}

// Close releases a handle returned by the event log API. Closing the zero
// handle is a no-op.
func Close(h windows.Handle) error {
	if h == 0 {
		return nil
	}
	return wevtapi.EvtClose(h)
}

// RenderFragment renders an event or bookmark fragment as XML text. The
// render call reports the required buffer size only by failing with
// ERROR_INSUFFICIENT_BUFFER, so every render is a two call handshake:
// probe with an empty buffer, then fill a buffer of the reported size.
func RenderFragment(fragment windows.Handle, flag uint32) (string, error) {
	var bufferUsed, propertyCount uint32
	err := wevtapi.EvtRender(0, fragment, flag, 0, nil, &bufferUsed, &propertyCount)
	if err != windows.ERROR_INSUFFICIENT_BUFFER {
		return "", eventError("probing render buffer size", err)
	}
	if bufferUsed == 0 {
		return "", nil
	}

	// bufferUsed is in bytes, the buffer holds UTF-16 code units.
	buf := make([]uint16, (bufferUsed+1)/2)
	if err := wevtapi.EvtRender(0, fragment, flag, bufferUsed, unsafe.Pointer(&buf[0]), &bufferUsed, &propertyCount); err != nil {
		return "", eventError("rendering fragment", err)
	}
	return utf16ToString(buf), nil
}

// formatEventMessage renders an event as XML with its message strings
// expanded from the publisher metadata, using the same probe-then-fill
// handshake as RenderFragment. metadata may be zero, in which case the
// service falls back to the unexpanded template text.
func formatEventMessage(metadata, event windows.Handle, flag uint32) (string, error) {
	var bufferUsed uint32
	err := wevtapi.EvtFormatMessage(metadata, event, 0, 0, 0, flag, 0, nil, &bufferUsed)
	if err != windows.ERROR_INSUFFICIENT_BUFFER {
		return "", eventError("probing message buffer size", err)
	}
	if bufferUsed == 0 {
		return "", nil
	}

	// bufferUsed is in UTF-16 code units here, not bytes.
	buf := make([]uint16, bufferUsed)
	if err := wevtapi.EvtFormatMessage(metadata, event, 0, 0, 0, flag, uint32(len(buf)), &buf[0], &bufferUsed); err != nil {
		return "", eventError("formatting event message", err)
	}
	return utf16ToString(buf), nil
}
