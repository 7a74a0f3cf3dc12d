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

// Ledger reports whether two participants have already faced each other.
// The round matcher only ever reads from it.
type Ledger[P comparable] interface {
	HavePlayed(a, b P) bool
}

// History is the symmetric play-history relation: for every participant,
// the set of opponents they have faced. Byes are never recorded and the
// relation only ever grows.
type History[P comparable] struct {
	opponents map[P]map[P]struct{}
}

var _ Ledger[string] = (*History[string])(nil)

// NewHistory returns an empty History with an entry for each participant.
func NewHistory[P comparable](participants ...P) *History[P] {
	h := &History[P]{opponents: make(map[P]map[P]struct{}, len(participants))}
	for _, p := range participants {
		h.opponents[p] = make(map[P]struct{})
	}

	return h
}

// Record notes that a and b have played each other, in both directions.
// Pairing a participant with itself is ignored.
func (h *History[P]) Record(a, b P) {
	if a == b {
		return
	}

	h.entry(a)[b] = struct{}{}
	h.entry(b)[a] = struct{}{}
}

// RecordMatch records a non-bye match. Bye matches are ignored.
func (h *History[P]) RecordMatch(m Match[P]) {
	if a, b, ok := m.Participants(); ok {
		h.Record(a, b)
	}
}

func (h *History[P]) entry(p P) map[P]struct{} {
	set, found := h.opponents[p]
	if !found {
		set = make(map[P]struct{})
		h.opponents[p] = set
	}

	return set
}

// HavePlayed reports whether a and b have already met.
func (h *History[P]) HavePlayed(a, b P) bool {
	_, played := h.opponents[a][b]
	return played
}

// Meetings returns the number of distinct pairs that have met.
func (h *History[P]) Meetings() int {
	total := 0
	for _, set := range h.opponents {
		total += len(set)
	}

	return total / 2
}
