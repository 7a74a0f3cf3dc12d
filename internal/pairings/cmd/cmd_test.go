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

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pairings/pkg/event"
	"laptudirm.com/x/pairings/pkg/pairing"
	"laptudirm.com/x/pairings/pkg/store"
)

func init() {
	color.NoColor = true
	logrus.SetOutput(new(bytes.Buffer))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestGeneratePlain(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "generate", "A", "B", "C", "D", "--seed", "7", "--format", "plain", "--dir", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(out, "Round 1\n@") {
		t.Errorf("output does not start with the first round:\n%s", out)
	}

	if n := strings.Count(out, "-----\n"); n != 3 {
		t.Errorf("got %d round separators, want 3", n)
	}

	if n := strings.Count(out, " vs "); n != 6 {
		t.Errorf("got %d matches, want 6:\n%s", n, out)
	}

	// nothing is saved without --save
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("store has %d entries, want 0", len(entries))
	}
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	args := []string{"generate", "--players", "A, B, C, D, E", "--rounds", "4", "--seed", "99", "--format", "plain", "--dir", t.TempDir()}

	first, err := run(t, args...)
	if err != nil {
		t.Fatal(err)
	}

	second, err := run(t, args...)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("same seed produced different schedules:\n%s\n%s", first, second)
	}

	if n := strings.Count(first, ": BYE"); n != 4 {
		t.Errorf("got %d byes, want one per round", n)
	}
}

func TestGenerateInvalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "event.yaml")
	if err := os.WriteFile(file, []byte("groups:\n  - participants: [A, B]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no participants", []string{"generate"}, pairing.ErrInvalidParticipants},
		{"zero rounds", []string{"generate", "A", "B", "--rounds", "0"}, pairing.ErrInvalidRounds},
		{"negative rounds", []string{"generate", "A", "B", "--rounds=-1"}, pairing.ErrInvalidRounds},
		{"duplicate participant", []string{"generate", "A", "B", "A"}, pairing.ErrInvalidParticipants},
		{"mixed sources", []string{"generate", "A", "--file", file}, errMixedSources},
		{"bad save name", []string{"generate", "A", "B", "--save", "../x"}, store.ErrInvalidName},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := run(t, append(test.args, "--dir", dir)...)
			if !errors.Is(err, test.want) {
				t.Errorf("got error %v, want %v", err, test.want)
			}
		})
	}

	if _, err := run(t, "generate", "A", "B", "--format", "html", "--dir", dir); err == nil {
		t.Error("unknown format was accepted")
	}
}

func writeEvent(t *testing.T, dir, config string) string {
	t.Helper()

	file := filepath.Join(dir, "event.yaml")
	if err := os.WriteFile(file, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	return file
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	file := writeEvent(t, dir, `event: Club Night
date: 2026-01-05
rounds: 2
groups:
  - name: Seed
    participants: [Alice, Bob, Carol]
  - name: Open
    participants: "Dave, Eve, Frank, Grace"
    rounds: 1
`)

	out, err := run(t, "generate", "--file", file, "--format", "plain", "--seed", "1", "--dir", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, heading := range []string{
		"Seed Group Pairings Monday 5th January 2026",
		"Open Group Pairings Monday 5th January 2026",
	} {
		if !strings.Contains(out, heading) {
			t.Errorf("output is missing %q:\n%s", heading, out)
		}
	}

	if n := strings.Count(out, "-----\n"); n != 3 {
		t.Errorf("got %d rounds, want 3", n)
	}
}

func TestGenerateRoundsOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := writeEvent(t, dir, `rounds: 2
groups:
  - name: Seed
    participants: [Alice, Bob, Carol, Dave]
    rounds: 4
  - name: Open
    participants: [Eve, Frank]
`)

	out, err := run(t, "generate", "--file", file, "--rounds", "1", "--format", "plain", "--dir", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// one round for each of the two groups
	if n := strings.Count(out, "-----\n"); n != 2 {
		t.Errorf("got %d rounds, want 2:\n%s", n, out)
	}

	if _, err := run(t, "generate", "--file", file, "--rounds", "0", "--dir", dir); !errors.Is(err, pairing.ErrInvalidRounds) {
		t.Errorf("--rounds 0 over a file: got %v, want %v", err, pairing.ErrInvalidRounds)
	}
}

func TestDescribe(t *testing.T) {
	record := &event.Record{
		Event: "Club Night",
		Groups: []event.Result{
			{Group: "Seed", Schedule: pairing.Schedule[string]{{Number: 1}, {Number: 2, Repeats: 1}}},
			{Group: "Open", Schedule: pairing.Schedule[string]{{Number: 1, Repeats: 1}}},
		},
	}

	if got := describe(record); !strings.HasPrefix(got, "Club Night (2 groups, 2 repeats) created ") {
		t.Errorf("describe() = %q", got)
	}

	record.Groups = record.Groups[:1]
	record.Groups[0].Schedule[1].Repeats = 0
	record.Event = ""
	if got := describe(record); !strings.HasPrefix(got, "Pairings (1 group) created ") {
		t.Errorf("describe() = %q", got)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "generate", "A", "B", "C", "--event", "Club Night", "--save", "week-1", "--format", "json", "--dir", dir); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := run(t, "list", "--dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "week-1:") || !strings.Contains(out, "Club Night (1 group)") {
		t.Errorf("list output is missing the saved schedule:\n%s", out)
	}

	out, err = run(t, "show", "week-1", "--format", "plain", "--dir", dir)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if n := strings.Count(out, ": BYE"); n != 3 {
		t.Errorf("got %d byes, want 3:\n%s", n, out)
	}

	if _, err := run(t, "remove", "week-1", "--dir", dir); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := run(t, "show", "week-1", "--dir", dir); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("show after remove: got %v, want %v", err, store.ErrNotFound)
	}

	if _, err := run(t, "remove", "week-1", "--dir", dir); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second remove: got %v, want %v", err, store.ErrNotFound)
	}

	out, err = run(t, "list", "--dir", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No Schedules Saved.") {
		t.Errorf("list of an empty store:\n%s", out)
	}
}
