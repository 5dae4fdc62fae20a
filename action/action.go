/*
Copyright © 2020 the gridprop authors.
This file is part of gridprop.

gridprop is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gridprop is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gridprop.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package action keeps the ordered list of named schedule actions and
// decides which of them are due to run.
package action

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridprop"
	"github.com/spatialmodel/gridprop/deck"
)

// Action is a named action that may run a limited number of times once
// the simulation reaches its start time.
type Action struct {
	Name string

	// Start is the earliest time the action can run.
	Start time.Time

	// MaxRuns is the number of times the action can run.
	MaxRuns int

	// MinWait is the shortest time between two runs.
	MinWait time.Duration

	runs    int
	lastRun time.Time
}

// Ready reports whether a can run at simulation time t.
func (a *Action) Ready(t time.Time) bool {
	if t.Before(a.Start) || a.runs >= a.MaxRuns {
		return false
	}
	return a.runs == 0 || t.Sub(a.lastRun) >= a.MinWait
}

// MarkRun records that a ran at time t.
func (a *Action) MarkRun(t time.Time) {
	a.runs++
	a.lastRun = t
}

// Runs returns the number of times a has run.
func (a *Action) Runs() int { return a.runs }

// Actions is an ordered list of actions with unique names.
type Actions struct {
	// Log receives progress messages. It defaults to the logrus standard
	// logger.
	Log logrus.FieldLogger

	actions []*Action
}

// New returns an empty list.
func New() *Actions {
	return &Actions{Log: logrus.StandardLogger()}
}

// FromDeck returns the actions declared by the ACTIONX keywords of d, all
// starting at start. MAX_RUNS defaults to 1 and MIN_WAIT, in days,
// defaults to 0.
func FromDeck(d *deck.Deck, start time.Time) (*Actions, error) {
	l := New()
	for _, kw := range d.KeywordList("ACTIONX") {
		for _, r := range kw.Records {
			a, err := fromRecord(r, start)
			if err != nil {
				return nil, fmt.Errorf("action: %s: %w", kw, err)
			}
			l.Add(a)
		}
	}
	return l, nil
}

func fromRecord(r *deck.Record, start time.Time) (*Action, error) {
	name, err := r.Item("NAME")
	if err != nil {
		return nil, err
	}
	if name.DefaultApplied(0) {
		return nil, fmt.Errorf("%w: action has no name", gridprop.ErrUnsupportedRecordShape)
	}
	maxRuns, err := r.Item("MAX_RUNS")
	if err != nil {
		return nil, err
	}
	minWait, err := r.Item("MIN_WAIT")
	if err != nil {
		return nil, err
	}
	a := &Action{Name: name.Text(0), Start: start}
	if a.MaxRuns, err = maxRuns.IntOr(0, 1); err != nil {
		return nil, err
	}
	days, err := minWait.FloatOr(0, 0)
	if err != nil {
		return nil, err
	}
	a.MinWait = time.Duration(days * float64(24*time.Hour))
	return a, nil
}

// Len returns the number of actions.
func (l *Actions) Len() int { return len(l.actions) }

// Empty reports whether there are no actions.
func (l *Actions) Empty() bool { return len(l.actions) == 0 }

// Add appends a, or replaces the action with the same name in place.
func (l *Actions) Add(a *Action) {
	for i, old := range l.actions {
		if old.Name == a.Name {
			l.Log.WithField("action", a.Name).Debug("action: updating action")
			l.actions[i] = a
			return
		}
	}
	l.Log.WithField("action", a.Name).Debug("action: adding action")
	l.actions = append(l.actions, a)
}

// Get returns the action with the given name.
func (l *Actions) Get(name string) (*Action, error) {
	for _, a := range l.actions {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("action: %w: no such action: %s", gridprop.ErrNotFound, name)
}

// At returns action i. It panics if i is out of range.
func (l *Actions) At(i int) *Action { return l.actions[i] }

// Ready reports whether any action can run at time t.
func (l *Actions) Ready(t time.Time) bool {
	for _, a := range l.actions {
		if a.Ready(t) {
			return true
		}
	}
	return false
}

// Pending returns the actions that can run at time t, in order.
func (l *Actions) Pending(t time.Time) []*Action {
	var o []*Action
	for _, a := range l.actions {
		if a.Ready(t) {
			o = append(o, a)
		}
	}
	return o
}
