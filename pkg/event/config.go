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

// Package event describes a pairing event made up of one or more groups
// and generates a schedule for each of them.
package event

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

// DefaultRounds is the number of rounds used when neither the event nor a
// group specify one.
const DefaultRounds = 3

// Config is the on-disk description of an event.
type Config struct {
	// Name of the event, used in headings and stored records.
	Event string `yaml:"event"`

	// Date the event takes place on, in any format dateparse understands.
	// Left blank, the current date is used.
	Date string `yaml:"date"`

	// Number of rounds to pair, unless overridden by a group. Left unset,
	// DefaultRounds is used.
	Rounds *int `yaml:"rounds"`

	// Seed makes the generated schedules reproducible. Zero picks a random
	// seed for every run.
	Seed uint64 `yaml:"seed"`

	Groups []Group `yaml:"groups"`
}

// Group is an independently paired set of participants.
type Group struct {
	Name         string       `yaml:"name"`
	Participants Participants `yaml:"participants"`
	Rounds       *int         `yaml:"rounds,omitempty"`
}

// Participants is a list of participant names. In YAML it can be written
// either as a sequence or as a single comma-delimited string.
type Participants []string

func (p *Participants) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = ParseParticipants(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}

		*p = CleanParticipants(list)
		return nil
	default:
		return fmt.Errorf("line %d: participants must be a list or a comma-separated string", node.Line)
	}
}

// ParseParticipants splits a comma-delimited field into participant
// names, trimming whitespace and dropping empty entries.
func ParseParticipants(field string) []string {
	return CleanParticipants(strings.Split(field, ","))
}

// CleanParticipants trims whitespace from the given names and drops the
// ones left empty.
func CleanParticipants(list []string) []string {
	var names []string
	for _, name := range list {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

// Load reads and validates the event file at path.
func Load(path string) (Config, error) {
	var config Config

	file, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("load %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("load %s: %w", path, err)
	}

	return config, nil
}

var (
	ErrNoGroups       = errors.New("event has no groups")
	ErrDuplicateGroup = errors.New("duplicate group name")
	ErrInvalidDate    = errors.New("invalid event date")
)

// Validate checks the parts of the config the pairing core does not: group
// names must be unique and the date must parse. Participant lists and round
// counts are checked by pairing.Generate.
func (config Config) Validate() error {
	if len(config.Groups) == 0 {
		return ErrNoGroups
	}

	names := make(map[string]bool, len(config.Groups))
	for _, group := range config.Groups {
		if names[group.Name] {
			return fmt.Errorf("%w %q", ErrDuplicateGroup, group.Name)
		}
		names[group.Name] = true
	}

	if _, err := config.When(time.Now()); err != nil {
		return err
	}

	return nil
}

// When returns the date of the event, or now if no date was given.
func (config Config) When(now time.Time) (time.Time, error) {
	if strings.TrimSpace(config.Date) == "" {
		return now, nil
	}

	date, err := dateparse.ParseLocal(config.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, config.Date, err)
	}

	return date, nil
}

// RoundsFor returns the number of rounds the given group is paired for.
func (config Config) RoundsFor(group Group) int {
	switch {
	case group.Rounds != nil:
		return *group.Rounds
	case config.Rounds != nil:
		return *config.Rounds
	default:
		return DefaultRounds
	}
}
