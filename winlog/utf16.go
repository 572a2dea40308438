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

import "unicode/utf16"

// utf16ToString decodes a UTF-16 buffer, dropping the trailing NUL padding
// the render calls leave behind. Interior NULs are preserved, unlike
// syscall.UTF16ToString which truncates at the first NUL. Invalid surrogate
// pairs decode to U+FFFD.
func utf16ToString(b []uint16) string {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(utf16.Decode(b))
}
