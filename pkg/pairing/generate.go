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

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidParticipants is returned when the participant list is
	// empty or names the same participant more than once.
	ErrInvalidParticipants = errors.New("invalid participants")

	// ErrInvalidRounds is returned when the round count is not positive.
	ErrInvalidRounds = errors.New("invalid round count")
)

// Option configures a call to Generate.
type Option func(*settings)

type settings struct {
	rng    *rand.Rand
	logger logrus.FieldLogger
}

// WithRand makes Generate draw its shuffles from r. A *rand.Rand is not
// safe for concurrent use, so concurrent calls need one each.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) {
		s.rng = r
	}
}

// WithSeed makes Generate reproducible: the same participants, round count
// and seed always produce the same schedule.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithLogger sets the logger Generate reports its progress to.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Generate builds a schedule of the given number of rounds. Before every
// round the participants are shuffled uniformly at random, padded with a
// bye if there is an odd number of them, and paired by MatchRound against
// the history of all previous rounds.
//
// Invalid arguments are reported before any round is generated, with an
// error wrapping ErrInvalidParticipants or ErrInvalidRounds.
func Generate[P comparable](participants []P, rounds int, opts ...Option) (Schedule[P], error) {
	if err := Validate(participants, rounds); err != nil {
		return nil, err
	}

	config := settings{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&config)
	}

	if config.rng == nil {
		config.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	history := NewHistory(participants...)
	schedule := make(Schedule[P], 0, rounds)

	for number := 1; number <= rounds; number++ {
		pool := shuffledPool(participants, config.rng)

		matches, exact := matchRound(pool, history)

		repeats := 0
		for _, match := range matches {
			if a, b, ok := match.Participants(); ok && history.HavePlayed(a, b) {
				repeats++
			}
		}

		for _, match := range matches {
			history.RecordMatch(match)
		}

		log := config.logger.WithFields(logrus.Fields{
			"round":   number,
			"matches": len(matches),
		})
		if exact {
			log.Debug("paired round without repeats")
		} else {
			log.WithField("repeats", repeats).Info("no repeat-free pairing exists, accepted repeats")
		}

		schedule = append(schedule, Round[P]{
			Number:  number,
			Matches: matches,
			Repeats: repeats,
		})
	}

	config.logger.WithFields(logrus.Fields{
		"rounds":   rounds,
		"meetings": history.Meetings(),
		"repeats":  schedule.Repeats(),
	}).Debug("generated schedule")

	return schedule, nil
}

// Validate reports the error Generate would return for the given arguments,
// without generating anything.
func Validate[P comparable](participants []P, rounds int) error {
	if len(participants) == 0 {
		return fmt.Errorf("generate: %w: no participants given", ErrInvalidParticipants)
	}

	seen := make(map[P]struct{}, len(participants))
	for _, p := range participants {
		if _, found := seen[p]; found {
			return fmt.Errorf("generate: %w: %v is listed more than once", ErrInvalidParticipants, p)
		}
		seen[p] = struct{}{}
	}

	if rounds < 1 {
		return fmt.Errorf("generate: %w: %d is not a positive integer", ErrInvalidRounds, rounds)
	}

	return nil
}

// shuffledPool returns a uniformly random permutation of the participants,
// with a bye appended when their number is odd.
func shuffledPool[P comparable](participants []P, rng *rand.Rand) []Slot[P] {
	pool := make([]Slot[P], len(participants), len(participants)+1)
	for i, p := range participants {
		pool[i] = SlotOf(p)
	}

	Shuffle(pool, rng)

	if len(pool)%2 == 1 {
		pool = append(pool, Bye[P]())
	}

	return pool
}

// Shuffle permutes s in place so that every ordering is equally likely.
// It walks from the last element down, swapping each with a uniformly
// chosen element at or before it.
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
