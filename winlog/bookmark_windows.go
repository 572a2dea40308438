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
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// GetBookmarkRegistry loads a bookmark previously persisted with
// SetBookmarkRegistry. A missing key or value yields an empty bookmark,
// not an error, so first runs start from the configured position.
func GetBookmarkRegistry(root registry.Key, path, name string) (string, error) {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("registry.OpenKey failed: %v", err)
	}
	defer k.Close()

	bookmark, _, err := k.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("registry.GetStringValue failed: %v", err)
	}
	return bookmark, nil
}

// SetBookmarkRegistry persists an exported bookmark under the given
// registry value, creating the key if needed.
func SetBookmarkRegistry(bookmark string, root registry.Key, path, name string) error {
	k, _, err := registry.CreateKey(root, path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("registry.CreateKey failed: %v", err)
	}
	defer k.Close()

	if err := k.SetStringValue(name, bookmark); err != nil {
		return fmt.Errorf("registry.SetStringValue failed: %v", err)
	}
	return nil
}
