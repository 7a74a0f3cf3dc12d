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

// Package pairing generates multi-round pairing schedules which avoid
// repeat opponents whenever a repeat-free pairing exists.
package pairing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Slot is one side of a Match: either a participant or the bye marker. The
// zero Slot is the bye marker, which is distinct from every participant.
type Slot[P comparable] struct {
	player   P
	occupied bool
}

// SlotOf returns a Slot holding the given participant.
func SlotOf[P comparable](p P) Slot[P] {
	return Slot[P]{player: p, occupied: true}
}

// Bye returns the bye marker.
func Bye[P comparable]() Slot[P] {
	return Slot[P]{}
}

// IsBye reports whether the slot is the bye marker.
func (s Slot[P]) IsBye() bool {
	return !s.occupied
}

// Participant returns the participant in the slot. The boolean is false
// for the bye marker.
func (s Slot[P]) Participant() (P, bool) {
	return s.player, s.occupied
}

func (s Slot[P]) String() string {
	if !s.occupied {
		return "BYE"
	}

	return fmt.Sprint(s.player)
}

// MarshalJSON encodes the bye marker as null.
func (s Slot[P]) MarshalJSON() ([]byte, error) {
	if !s.occupied {
		return []byte("null"), nil
	}

	return json.Marshal(s.player)
}

func (s *Slot[P]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Slot[P]{}
		return nil
	}

	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*s = SlotOf(p)
	return nil
}

// MarshalYAML encodes the bye marker as null. A null node decodes into the
// zero Slot, which is the bye marker, so no special handling is needed on
// the way back in.
func (s Slot[P]) MarshalYAML() (interface{}, error) {
	if !s.occupied {
		return nil, nil
	}

	return s.player, nil
}

func (s *Slot[P]) UnmarshalYAML(node *yaml.Node) error {
	var p P
	if err := node.Decode(&p); err != nil {
		return err
	}

	*s = SlotOf(p)
	return nil
}
