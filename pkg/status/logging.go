// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	statusWidth  = 12 // Width for status text
	detailsWidth = 20 // Width for the replacement count
)

// 🎯 FormatFileLine formats a file result as an aligned console line
func FormatFileLine(r FileResult) string {
	var prefix string
	switch {
	case r.Error != nil:
		prefix = color.RedString("✗")
	case r.Status == StatusNew:
		prefix = color.GreenString("✓")
	case r.Status == StatusModified:
		prefix = color.YellowString("⟳")
	case r.Status == StatusRestored:
		prefix = color.BlueString("↺")
	case r.Status == StatusMissing:
		prefix = color.RedString("?")
	default:
		prefix = color.HiBlackString("-")
	}

	statusText := r.Status.String()
	if r.Error != nil {
		statusText = "error"
	}

	details := ""
	if r.Replacements > 0 {
		details = fmt.Sprintf("%d replacements", r.Replacements)
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		fmt.Sprintf("%-*s", statusWidth, statusText),
		fmt.Sprintf("%-*s", detailsWidth, details),
	), " ")
}
