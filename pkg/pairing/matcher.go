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

import "fmt"

// MatchRound pairs every entry of pool for a single round. It returns a
// pairing with no repeat opponents whenever one exists, and otherwise falls
// back to a greedy pairing which accepts repeats. Ties are always broken by
// pool order, so the result only depends on the order of the pool.
//
// The pool must have an even length; callers pad odd groups with a Bye.
// An odd pool is a programming error and causes a panic.
func MatchRound[P comparable](pool []Slot[P], ledger Ledger[P]) []Match[P] {
	matches, _ := matchRound(pool, ledger)
	return matches
}

// matchRound is MatchRound which also reports whether the exact search
// succeeded.
func matchRound[P comparable](pool []Slot[P], ledger Ledger[P]) ([]Match[P], bool) {
	if len(pool)%2 != 0 {
		panic(fmt.Sprintf("pairing: pool of odd length %d", len(pool)))
	}

	if matches, found := search(pool, ledger); found {
		return matches, true
	}

	return greedy(pool, ledger), false
}

// compatible reports whether the two slots may be paired without a repeat.
// Byes are compatible with everyone.
func compatible[P comparable](a, b Slot[P], ledger Ledger[P]) bool {
	if a.IsBye() || b.IsBye() {
		return true
	}

	return !ledger.HavePlayed(a.player, b.player)
}

// pair is a tentative assignment of pool position i to position j, i < j.
type pair struct{ i, j int }

// search is an exhaustive backtracking search for a repeat-free pairing.
//
// The stack holds the tentative pairs in the order they were made. A
// position is marked as used exactly when a pair on the stack refers to it,
// so every push is undone by exactly one pop.
func search[P comparable](pool []Slot[P], ledger Ledger[P]) ([]Match[P], bool) {
	n := len(pool)
	used := make([]bool, n)
	stack := make([]pair, 0, n/2)

	// i is the first unpaired position and from is the first candidate
	// partner for it which has not been tried yet.
	i, from := 0, 1
	for {
		for i < n && used[i] {
			i++
		}

		if i >= n {
			break
		}

		if from <= i {
			from = i + 1
		}

		j := from
		for ; j < n; j++ {
			if !used[j] && compatible(pool[i], pool[j], ledger) {
				break
			}
		}

		if j < n {
			used[i], used[j] = true, true
			stack = append(stack, pair{i, j})
			i, from = 0, 0
			continue
		}

		// Dead end for position i: undo the most recent pair and try the
		// next candidate for its first position.
		if len(stack) == 0 {
			return nil, false
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		used[top.i], used[top.j] = false, false
		i, from = top.i, top.j+1
	}

	matches := make([]Match[P], len(stack))
	for k, p := range stack {
		matches[k] = NewMatch(pool[p.i], pool[p.j])
	}

	return matches, true
}

// greedy pairs the pool front to back, giving each entry the first
// remaining partner it has not played yet, or the first remaining partner
// if it has played all of them.
func greedy[P comparable](pool []Slot[P], ledger Ledger[P]) []Match[P] {
	remaining := make([]Slot[P], len(pool))
	copy(remaining, pool)

	matches := make([]Match[P], 0, len(pool)/2)
	for len(remaining) > 0 {
		head := remaining[0]
		remaining = remaining[1:]

		chosen := 0
		if !head.IsBye() {
			for k, candidate := range remaining {
				if compatible(head, candidate, ledger) {
					chosen = k
					break
				}
			}
		}

		partner := remaining[chosen]
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)

		matches = append(matches, NewMatch(head, partner))
	}

	return matches
}
