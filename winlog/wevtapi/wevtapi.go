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

// Package wevtapi provides thin bindings for the Windows Event Log API
// exported by wevtapi.dll.
// https://learn.microsoft.com/en-us/windows/win32/api/winevt/
package wevtapi

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go wevtapi.go

// EVT_SUBSCRIBE_FLAGS, passed to EvtSubscribe.
// https://learn.microsoft.com/en-us/windows/win32/api/winevt/ne-winevt-evt_subscribe_flags
const (
	EvtSubscribeToFutureEvents      = 1
	EvtSubscribeStartAtOldestRecord = 2
	EvtSubscribeStartAfterBookmark  = 3
)

// EVT_RENDER_FLAGS, passed to EvtRender.
// https://learn.microsoft.com/en-us/windows/win32/api/winevt/ne-winevt-evt_render_flags
const (
	EvtRenderEventValues = 0
	EvtRenderEventXml    = 1
	EvtRenderBookmark    = 2
)

// EVT_FORMAT_MESSAGE_FLAGS, passed to EvtFormatMessage.
// https://learn.microsoft.com/en-us/windows/win32/api/winevt/ne-winevt-evt_format_message_flags
const (
	EvtFormatMessageEvent    = 1
	EvtFormatMessageLevel    = 2
	EvtFormatMessageTask     = 3
	EvtFormatMessageOpcode   = 4
	EvtFormatMessageKeyword  = 5
	EvtFormatMessageChannel  = 6
	EvtFormatMessageProvider = 7
	EvtFormatMessageId       = 8
	EvtFormatMessageXml      = 9
)

//sys	EvtClose(object windows.Handle) (err error) = wevtapi.EvtClose
//sys	EvtCreateBookmark(bookmarkXML *uint16) (handle windows.Handle, err error) = wevtapi.EvtCreateBookmark
//sys	EvtUpdateBookmark(bookmark windows.Handle, event windows.Handle) (err error) = wevtapi.EvtUpdateBookmark
//sys	EvtSubscribe(session windows.Handle, signalEvent windows.Handle, channelPath *uint16, query *uint16, bookmark windows.Handle, context uintptr, callback uintptr, flags uint32) (handle windows.Handle, err error) = wevtapi.EvtSubscribe
//sys	EvtNext(resultSet windows.Handle, eventsSize uint32, events *windows.Handle, timeout uint32, flags uint32, numReturned *uint32) (err error) = wevtapi.EvtNext
//sys	EvtRender(context windows.Handle, fragment windows.Handle, flags uint32, bufferSize uint32, buffer unsafe.Pointer, bufferUsed *uint32, propertyCount *uint32) (err error) = wevtapi.EvtRender
//sys	EvtFormatMessage(publisherMetadata windows.Handle, event windows.Handle, messageID uint32, valueCount uint32, values uintptr, flags uint32, bufferSize uint32, buffer *uint16, bufferUsed *uint32) (err error) = wevtapi.EvtFormatMessage
//sys	EvtOpenPublisherMetadata(session windows.Handle, publisherIdentity *uint16, logFilePath *uint16, locale uint32, flags uint32) (handle windows.Handle, err error) = wevtapi.EvtOpenPublisherMetadata
//sys	EvtOpenChannelEnum(session windows.Handle, flags uint32) (handle windows.Handle, err error) = wevtapi.EvtOpenChannelEnum
//sys	EvtNextChannelPath(channelEnum windows.Handle, channelPathBufferSize uint32, channelPathBuffer *uint16, channelPathBufferUsed *uint32) (err error) = wevtapi.EvtNextChannelPath
//sys	EvtOpenPublisherEnum(session windows.Handle, flags uint32) (handle windows.Handle, err error) = wevtapi.EvtOpenPublisherEnum
//sys	EvtNextPublisherId(publisherEnum windows.Handle, publisherIdBufferSize uint32, publisherIdBuffer *uint16, publisherIdBufferUsed *uint32) (err error) = wevtapi.EvtNextPublisherId
