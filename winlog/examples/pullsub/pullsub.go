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

// Binary pullsub is an example application using the Windows Event Log API
// "pull" subscription model to print events to the console, persisting its
// position in the registry between runs.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sys/windows/registry"

	"github.com/winlogkit/winevents/winlog"
)

const (
	bookmarkPath  = `SOFTWARE\Logging`
	bookmarkValue = "Bookmark"
)

func main() {
	flag.Parse()

	// Resume from the bookmark persisted by a previous run, if any.
	bookmark, err := winlog.GetBookmarkRegistry(registry.CURRENT_USER, bookmarkPath, bookmarkValue)
	if err != nil {
		glog.Exitf("winlog.GetBookmarkRegistry failed: %v", err)
	}

	reader, err := winlog.Open(winlog.ReaderConfig{
		Query:    winlog.DefaultQuery,
		Bookmark: bookmark,
		Output:   winlog.OutputXML,
	})
	if err != nil {
		glog.Exitf("winlog.Open failed: %v", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if winlog.IsNoMoreLogs(err) {
			time.Sleep(2 * time.Second)
			continue
		}
		if err != nil {
			if kind, ok := winlog.KindOf(err); ok && kind == winlog.KindEvent {
				glog.Warningf("skipping event: %v", err)
				continue
			}
			glog.Errorf("reader.Next failed: %v", err)
			break
		}

		fmt.Println(event.XML)

		// Persist the position after every delivered event so a crash
		// never replays it.
		bookmark, err := reader.Bookmark()
		if err != nil {
			glog.Exitf("reader.Bookmark failed: %v", err)
		}
		if err := winlog.SetBookmarkRegistry(bookmark, registry.CURRENT_USER, bookmarkPath, bookmarkValue); err != nil {
			glog.Exitf("winlog.SetBookmarkRegistry failed: %v", err)
		}
	}
}
