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

package action

import (
	"errors"
	"testing"
	"time"

	"github.com/spatialmodel/gridprop"
	"github.com/spatialmodel/gridprop/deck"
)

var t0 = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func names(actions []*Action) []string {
	var o []string
	for _, a := range actions {
		o = append(o, a.Name)
	}
	return o
}

func TestActions(t *testing.T) {
	l := New()
	if !l.Empty() || l.Len() != 0 {
		t.Error("new list should be empty")
	}
	l.Add(&Action{Name: "A", Start: t0, MaxRuns: 1})
	l.Add(&Action{Name: "B", Start: t0.AddDate(0, 1, 0), MaxRuns: 1})
	l.Add(&Action{Name: "A", Start: t0, MaxRuns: 2})
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}
	if l.At(0).Name != "A" || l.At(0).MaxRuns != 2 {
		t.Errorf("replaced action should keep its position: %+v", l.At(0))
	}

	if _, err := l.Get("C"); !errors.Is(err, gridprop.ErrNotFound) {
		t.Errorf("got %v", err)
	}
	a, err := l.Get("A")
	if err != nil {
		t.Fatal(err)
	}

	if l.Ready(t0.Add(-time.Hour)) {
		t.Error("nothing should be ready before the start")
	}
	if got := names(l.Pending(t0)); len(got) != 1 || got[0] != "A" {
		t.Errorf("pending = %v", got)
	}
	later := t0.AddDate(0, 2, 0)
	if got := names(l.Pending(later)); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("pending = %v", got)
	}

	a.MarkRun(t0)
	a.MarkRun(later)
	if a.Runs() != 2 || a.Ready(later) {
		t.Error("A has used all of its runs")
	}
	if got := names(l.Pending(later)); len(got) != 1 || got[0] != "B" {
		t.Errorf("pending = %v", got)
	}
}

func TestMinWait(t *testing.T) {
	a := &Action{Name: "W", Start: t0, MaxRuns: 3, MinWait: 48 * time.Hour}
	a.MarkRun(t0)
	if a.Ready(t0.Add(24 * time.Hour)) {
		t.Error("should wait two days between runs")
	}
	if !a.Ready(t0.Add(48 * time.Hour)) {
		t.Error("should be ready after two days")
	}
}

func TestFromDeck(t *testing.T) {
	d := new(deck.Deck)
	for _, r := range [][]string{{"'OPEN'", "2", "1.5"}, {"SHUT"}} {
		kw, err := deck.NewKeyword("ACTIONX", deck.Location{}, r)
		if err != nil {
			t.Fatal(err)
		}
		d.Add(kw)
	}
	l, err := FromDeck(d, t0)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Fatalf("len = %d", l.Len())
	}
	open := l.At(0)
	if open.Name != "OPEN" || open.MaxRuns != 2 || open.MinWait != 36*time.Hour || !open.Start.Equal(t0) {
		t.Errorf("OPEN = %+v", open)
	}
	shut := l.At(1)
	if shut.MaxRuns != 1 || shut.MinWait != 0 {
		t.Errorf("SHUT = %+v", shut)
	}

	bad, err := deck.NewKeyword("ACTIONX", deck.Location{}, []string{"1*", "1"})
	if err != nil {
		t.Fatal(err)
	}
	d.Add(bad)
	if _, err := FromDeck(d, t0); err == nil {
		t.Error("unnamed action should fail")
	}
}
