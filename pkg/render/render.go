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

// Package render writes generated schedules for people to read.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/pairings/pkg/event"
)

// Format selects how a record is written.
type Format string

const (
	FormatText  Format = "text"  // coloured, for terminals
	FormatPlain Format = "plain" // @-mention export for chat
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatPlain, FormatJSON, FormatYAML}

func ParseFormat(name string) (Format, error) {
	for _, format := range Formats {
		if string(format) == strings.ToLower(name) {
			return format, nil
		}
	}

	return "", fmt.Errorf("unknown format %q, expected one of %v", name, Formats)
}

// Write renders the record to w in the given format.
func Write(w io.Writer, format Format, record *event.Record) error {
	switch format {
	case FormatText:
		return Text(w, record)
	case FormatPlain:
		return Plain(w, record)
	case FormatJSON:
		return JSON(w, record)
	case FormatYAML:
		return YAML(w, record)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Heading returns the title of a group's pairings, like
// "Seed Group Pairings Monday 5th January 2026".
func Heading(group string, date time.Time) string {
	when := fmt.Sprintf("%s %s %s %d",
		date.Weekday(), humanize.Ordinal(date.Day()), date.Month(), date.Year())

	if group == "" {
		return "Pairings " + when
	}

	return group + " Group Pairings " + when
}

// Plain writes the plain-text export: one line per match with participants
// as @-mentions, and a separator after every round.
func Plain(w io.Writer, record *event.Record) error {
	var b strings.Builder

	for i, result := range record.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		if len(record.Groups) > 1 || result.Group != "" {
			b.WriteString(Heading(result.Group, record.Date) + "\n")
		}

		for _, round := range result.Schedule {
			fmt.Fprintf(&b, "Round %d\n", round.Number)
			for _, match := range round.Matches {
				if match.Bye {
					who, _ := match.Player()
					fmt.Fprintf(&b, "@%s: BYE\n", who)
					continue
				}

				fmt.Fprintf(&b, "@%s vs @%s\n", match.Player1, match.Player2)
			}
			b.WriteString("-----\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Text writes the record for a terminal, with every participant shown in
// their own colour.
func Text(w io.Writer, record *event.Record) error {
	var b strings.Builder

	title := color.New(color.Bold)
	faint := color.New(color.Faint)

	if record.Event != "" {
		b.WriteString(title.Sprint(record.Event) + "\n\n")
	}

	for i, result := range record.Groups {
		if i > 0 {
			b.WriteString("\n")
		}

		palette := NewPalette(result.Participants)
		b.WriteString(title.Sprint(Heading(result.Group, record.Date)) + "\n")

		for _, round := range result.Schedule {
			fmt.Fprintf(&b, "\n%s", title.Sprintf("Round %d", round.Number))
			if round.Repeats > 0 {
				b.WriteString(faint.Sprintf(" (%d repeat%s)", round.Repeats, plural(round.Repeats)))
			}
			b.WriteString("\n")

			for board, match := range round.Matches {
				if match.Bye {
					who, _ := match.Player()
					fmt.Fprintf(&b, "  %2d. %s: BYE\n", board+1, palette.Paint(who))
					continue
				}

				fmt.Fprintf(&b, "  %2d. %s vs %s\n", board+1,
					palette.Paint(match.Player1.String()),
					palette.Paint(match.Player2.String()))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}

func JSON(w io.Writer, record *event.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}

func YAML(w io.Writer, record *event.Record) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(record); err != nil {
		return err
	}

	return encoder.Close()
}
