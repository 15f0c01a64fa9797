// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package statemachine

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a move is not in the transition table
var ErrInvalidTransition = errors.New("invalid state transition")

// StateMachine is an immutable transition table with a designated initial
// state. It keeps no current state, so one instance can be shared by every
// request the service handles.
type StateMachine[T comparable] struct {
	initial T
	edges   map[T]map[T]struct{}
}

// NewWithState returns a machine whose fresh entities start in initial.
func NewWithState[T comparable](initial T) *StateMachine[T] {
	return &StateMachine[T]{initial: initial, edges: make(map[T]map[T]struct{})}
}

// Allow registers from -> to for every target. Call it only while building.
func (sm *StateMachine[T]) Allow(from T, to ...T) *StateMachine[T] {
	next, ok := sm.edges[from]
	if !ok {
		next = make(map[T]struct{}, len(to))
		sm.edges[from] = next
	}
	for _, t := range to {
		next[t] = struct{}{}
	}
	return sm
}

func (sm *StateMachine[T]) Initial() T {
	return sm.initial
}

func (sm *StateMachine[T]) CanTransition(from, to T) bool {
	_, ok := sm.edges[from][to]
	return ok
}

// Validate wraps ErrInvalidTransition with both states when the move is not allowed.
func (sm *StateMachine[T]) Validate(from, to T) error {
	if !sm.CanTransition(from, to) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminal reports whether nothing leaves state.
func (sm *StateMachine[T]) IsTerminal(state T) bool {
	return len(sm.edges[state]) == 0
}
