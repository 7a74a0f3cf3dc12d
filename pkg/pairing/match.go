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

package pairing

// Match is an unordered pairing of two slots. At most one of the slots is
// the bye marker, in which case Bye is set.
type Match[P comparable] struct {
	Player1 Slot[P] `json:"player1" yaml:"player1"`
	Player2 Slot[P] `json:"player2" yaml:"player2"`

	Bye bool `json:"bye" yaml:"bye"`
}

// NewMatch pairs the two slots and derives the Bye flag.
func NewMatch[P comparable](a, b Slot[P]) Match[P] {
	return Match[P]{
		Player1: a,
		Player2: b,
		Bye:     a.IsBye() || b.IsBye(),
	}
}

// Player returns the participant who sits out a bye match.
func (m Match[P]) Player() (P, bool) {
	if m.Player1.IsBye() {
		return m.Player2.Participant()
	}

	return m.Player1.Participant()
}

// Participants returns both participants of a non-bye match. The boolean
// is false for a bye match.
func (m Match[P]) Participants() (P, P, bool) {
	a, okA := m.Player1.Participant()
	b, okB := m.Player2.Participant()
	return a, b, okA && okB
}

// Round is one numbered round of a Schedule. Every participant appears in
// exactly one of its matches.
type Round[P comparable] struct {
	Number  int        `json:"round" yaml:"round"`
	Matches []Match[P] `json:"matches" yaml:"matches"`

	// Repeats is the number of matches in the round between participants
	// who had already met in an earlier round.
	Repeats int `json:"repeats,omitempty" yaml:"repeats,omitempty"`
}

// Schedule is the ordered list of rounds produced by Generate.
type Schedule[P comparable] []Round[P]

// Repeats returns the total number of repeat match-ups in the schedule.
func (s Schedule[P]) Repeats() int {
	total := 0
	for _, round := range s {
		total += round.Repeats
	}

	return total
}
