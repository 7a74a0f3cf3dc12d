// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

var working = spinner.New(
	spinner.CharSets[14], 100*time.Millisecond,
	spinner.WithWriter(os.Stderr),
	spinner.WithSuffix(" pairing"),
)

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// StartSpinner shows the working spinner on stderr. Nothing is shown when
// stderr is not a terminal.
func StartSpinner() {
	if Interactive(os.Stderr) {
		working.Start()
	}
}

// PauseSpinner hides the working spinner until the next StartSpinner.
func PauseSpinner() {
	working.Stop()
}
