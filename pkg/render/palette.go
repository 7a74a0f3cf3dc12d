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

package render

import "github.com/fatih/color"

// hues is ordered around the colour wheel so that evenly spaced picks look
// distinct. Yellow is left out as it is used for highlights.
var hues = []color.Attribute{
	color.FgHiRed,
	color.FgHiMagenta,
	color.FgHiBlue,
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgRed,
	color.FgMagenta,
	color.FgBlue,
	color.FgCyan,
	color.FgGreen,
}

// Palette assigns every participant a display colour.
type Palette map[string]*color.Color

// NewPalette spreads the participants evenly over the available colours,
// in the order given. With more participants than colours, colours are
// reused in the same order.
func NewPalette(participants []string) Palette {
	palette := make(Palette, len(participants))

	n := len(participants)
	for i, name := range participants {
		hue := i % len(hues)
		if n < len(hues) {
			hue = i * len(hues) / n
		}

		palette[name] = color.New(hues[hue])
	}

	return palette
}

// Paint returns name in its colour. Unknown names are left as they are.
func (palette Palette) Paint(name string) string {
	if c, found := palette[name]; found {
		return c.Sprint(name)
	}

	return name
}
