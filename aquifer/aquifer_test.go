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

package aquifer

import (
	"errors"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/gridprop"
	"github.com/spatialmodel/gridprop/deck"
)

func aquconDeck(t *testing.T, records ...string) *deck.Deck {
	t.Helper()
	var recs [][]string
	for _, r := range records {
		recs = append(recs, strings.Fields(r))
	}
	kw, err := deck.NewKeyword("AQUCON", deck.Location{File: "AQU.DATA", Line: 10}, recs...)
	if err != nil {
		t.Fatal(err)
	}
	d := new(deck.Deck)
	d.Add(kw)
	return d
}

func testGrid(t *testing.T) *gridprop.Grid {
	g, err := gridprop.NewGrid(3, 3, 1, []int{
		0, 1, 1,
		1, 1, 1,
		1, 1, 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestConnections(t *testing.T) {
	g := testGrid(t)
	c, err := NewConnections(aquconDeck(t,
		"1 1 3 1 1 1 1 J- 0.5",
		"2 2 2 2 2 1 1 I+ 1* 1* YES",
		"3 2 2 2 2 1 1 X+",
	), g)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(c.AquiferIDs(), []int{1, 2}); len(diff) != 0 {
		t.Error(diff)
	}

	cons, err := c.Connections(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []Connection{
		{AquiferID: 1, I: 1, J: 0, K: 0, GlobalIndex: 1, Face: JMinus, TransMultiplier: 0.5, VEFracRelPerm: 1, VEFracCapPress: 1},
		{AquiferID: 1, I: 2, J: 0, K: 0, GlobalIndex: 2, Face: JMinus, TransMultiplier: 0.5, VEFracRelPerm: 1, VEFracCapPress: 1},
	}
	if diff := pretty.Diff(cons, want); len(diff) != 0 {
		t.Error(diff)
	}

	cons, err = c.Connections(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(cons) != 1 || cons[0].GlobalIndex != 4 || !cons[0].ConnectActiveCell || cons[0].Face != IPlus {
		t.Errorf("aquifer 2: %# v", pretty.Formatter(cons))
	}

	if _, err := c.Connections(3); !errors.Is(err, gridprop.ErrNotFound) {
		t.Errorf("aquifer 3: got %v", err)
	}
}

func TestConnections_duplicate(t *testing.T) {
	_, err := NewConnections(aquconDeck(t,
		"1 2 3 1 1 1 1 J-",
		"1 3 3 1 2 1 1 I+",
	), testGrid(t))
	if !errors.Is(err, gridprop.ErrDuplicateDeclaration) {
		t.Fatalf("got %v", err)
	}
	for _, s := range []string{"(3, 1, 1)", "AQU.DATA line 10"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not contain %q", err, s)
		}
	}
}

func TestConnections_sameCellOtherAquifer(t *testing.T) {
	c, err := NewConnections(aquconDeck(t,
		"1 3 3 1 1 1 1 J-",
		"2 3 3 1 1 1 1 I+",
	), testGrid(t))
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(c.AquiferIDs(), []int{1, 2}); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestGenerateConnections_errors(t *testing.T) {
	for _, r := range []string{
		"1 1 4 1 1 1 1 I+",
		"1 1 1 1 1 1 1 Q+",
		"1 1 1 1 1 1 1 I+ 1 0 MAYBE",
	} {
		d := aquconDeck(t, r)
		if _, err := GenerateConnections(testGrid(t), d.Keywords[0].Records[0]); err == nil {
			t.Errorf("%q should fail", r)
		}
	}
}

func TestParseFaceDir(t *testing.T) {
	for s, want := range map[string]FaceDir{
		"I-": IMinus, "x+": IPlus, "J+": JPlus, "Y-": JMinus, " K+ ": KPlus, "Z-": KMinus,
	} {
		f, err := ParseFaceDir(s)
		if err != nil {
			t.Fatal(err)
		}
		if f != want {
			t.Errorf("%q: got %v, want %v", s, f, want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for s, want := range map[string]bool{"YES": true, "no": false, "true": true, "0": false} {
		b, err := parseBool(s)
		if err != nil {
			t.Fatal(err)
		}
		if b != want {
			t.Errorf("%q: got %v", s, b)
		}
	}
}
