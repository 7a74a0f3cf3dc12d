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

package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/pairings/pkg/pairing"
)

// Result is the schedule generated for one group.
type Result struct {
	Group        string                   `yaml:"group" json:"group"`
	Participants []string                 `yaml:"participants" json:"participants"`
	Schedule     pairing.Schedule[string] `yaml:"schedule" json:"schedule"`
}

// Generate pairs every group of the event. Groups are independent of each
// other and are generated concurrently, each with its own history and
// random source. All groups are validated before any of them is paired, so
// an invalid group produces an error and no results.
func Generate(ctx context.Context, config Config, logger logrus.FieldLogger) ([]Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	for _, group := range config.Groups {
		if err := pairing.Validate([]string(group.Participants), config.RoundsFor(group)); err != nil {
			return nil, fmt.Errorf("group %q: %w", group.Name, err)
		}
	}

	results := make([]Result, len(config.Groups))
	g, ctx := errgroup.WithContext(ctx)

	for i, group := range config.Groups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			opts := []pairing.Option{
				pairing.WithLogger(logger.WithField("group", group.Name)),
			}
			if config.Seed != 0 {
				opts = append(opts, pairing.WithSeed(config.Seed+uint64(i)))
			}

			schedule, err := pairing.Generate([]string(group.Participants), config.RoundsFor(group), opts...)
			if err != nil {
				return fmt.Errorf("group %q: %w", group.Name, err)
			}

			results[i] = Result{
				Group:        group.Name,
				Participants: group.Participants,
				Schedule:     schedule,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Record is a generated event as it is kept in a store.
type Record struct {
	ID      string    `yaml:"id" json:"id"`
	Event   string    `yaml:"event,omitempty" json:"event,omitempty"`
	Date    time.Time `yaml:"date" json:"date"`
	Created time.Time `yaml:"created" json:"created"`

	Groups []Result `yaml:"groups" json:"groups"`
}

// Run generates every group of the event and wraps the results in a new
// Record.
func Run(ctx context.Context, config Config, logger logrus.FieldLogger) (*Record, error) {
	now := time.Now()

	date, err := config.When(now)
	if err != nil {
		return nil, err
	}

	results, err := Generate(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	return &Record{
		ID:      uuid.NewString(),
		Event:   config.Event,
		Date:    date,
		Created: now.UTC(),
		Groups:  results,
	}, nil
}

func (record *Record) Marshal() ([]byte, error) {
	return yaml.Marshal(record)
}

// UnmarshalRecord decodes a Record previously encoded with Marshal.
func UnmarshalRecord(data []byte) (*Record, error) {
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	return &record, nil
}
