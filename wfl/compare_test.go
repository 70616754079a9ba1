package wfl

import (
	"errors"
	"fmt"
	"testing"
)

func checkStrictWeakOrdering(t *testing.T, name string, items []Callable) {
	t.Helper()
	for _, a := range items {
		if o := Compare(a, a); o != Equal {
			t.Fatalf("%s: Compare(x, x) = %s", name, o)
		}
		for _, b := range items {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab == Incomparable || ba == Incomparable {
				t.Fatalf("%s: value-compared callables reported incomparable", name)
			}
			if ab != -ba {
				t.Fatalf("%s: antisymmetry broken: %s vs %s", name, ab, ba)
			}
			for _, c := range items {
				bc, ac := Compare(b, c), Compare(a, c)
				if ab == Less && bc == Less && ac != Less {
					t.Fatalf("%s: transitivity broken", name)
				}
				if ab == Equal && bc == Equal && ac != Equal {
					t.Fatalf("%s: equality not transitive", name)
				}
			}
		}
	}
}

func TestValueComparisonsAreStrictWeakOrderings(t *testing.T) {
	var locs, terrains []Callable
	board := newFakeBoard()
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 3; x++ {
			locs = append(locs, NewLocationCallable(Location{X: x, Y: y}))
			tc, err := NewTerrainCallable(board, Location{X: x, Y: y})
			if err != nil {
				t.Fatalf("terrain: %v", err)
			}
			terrains = append(terrains, tc)
		}
	}
	locs = append(locs, NewLocationCallable(Location{X: 2, Y: 2}))

	var units []Callable
	for _, u := range board.units {
		units = append(units, NewUnitCallable(u), NewUnitCallableAt(Location{X: 9, Y: 9}, u))
	}

	var attacks []Callable
	for _, a := range []*Attack{
		{Name: "spear", Type: "pierce", Range: "melee", Damage: 7, Number: 3},
		{Name: "spear", Type: "pierce", Range: "melee", Damage: 7, Number: 3},
		{Name: "spear", Type: "pierce", Range: "ranged", Damage: 6, Number: 2},
		{Name: "axe", Type: "blade", Range: "melee", Damage: 7, Number: 3},
	} {
		attacks = append(attacks, NewAttackCallable(Share(a, nil)))
	}

	var types []Callable
	for _, id := range []string{"Spearman", "Bowman", "Spearman", "Cavalryman"} {
		types = append(types, NewUnitTypeCallable(&UnitType{ID: id}))
	}

	var configs []Callable
	for i, turns := range []int{12, 8, 12} {
		cfg := NewConfig()
		cfg.SetAttr("turns", turns)
		if i == 1 {
			cfg.AddChild("event").SetAttr("name", "start")
		}
		configs = append(configs, NewConfigCallable(cfg))
	}

	checkStrictWeakOrdering(t, "location", locs)
	checkStrictWeakOrdering(t, "terrain", terrains)
	checkStrictWeakOrdering(t, "unit", units)
	checkStrictWeakOrdering(t, "attack", attacks)
	checkStrictWeakOrdering(t, "unit_type", types)
	checkStrictWeakOrdering(t, "config", configs)
}

func TestLocationOrdering(t *testing.T) {
	tests := []struct {
		a, b Location
		want Ordering
	}{
		{Location{X: 1, Y: 1}, Location{X: 1, Y: 1}, Equal},
		{Location{X: 1, Y: 5}, Location{X: 2, Y: 1}, Less},
		{Location{X: 3, Y: 2}, Location{X: 3, Y: 1}, Greater},
	}
	for _, tt := range tests {
		got := Compare(NewLocationCallable(tt.a), NewLocationCallable(tt.b))
		if got != tt.want {
			t.Fatalf("Compare(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLocationRoundTrip(t *testing.T) {
	for x := -3; x <= 40; x += 7 {
		for y := -2; y <= 60; y += 9 {
			loc := NewLocationCallable(Location{X: x, Y: y})
			text, err := loc.Serialize()
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			parsed, err := ParseLocation(text)
			if err != nil {
				t.Fatalf("parse %q: %v", text, err)
			}
			if Compare(loc, parsed) != Equal {
				t.Fatalf("round trip of %s produced %s", loc.Location(), parsed.Location())
			}
		}
	}
}

func TestParseLocationRejectsMalformedText(t *testing.T) {
	for _, text := range []string{"", "loc(1)", "loc(1,2", "(1,2)", "loc(a,2)", "loc(1,b)", "pos(1,2)"} {
		if _, err := ParseLocation(text); !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("ParseLocation(%q) = %v, want ErrTypeMismatch", text, err)
		}
	}
	loc, err := ParseLocation("  loc( 4 , 7 ) ")
	if err != nil {
		t.Fatalf("parse with spaces: %v", err)
	}
	if loc.Location() != (Location{X: 4, Y: 7}) {
		t.Fatalf("parsed %v", loc.Location())
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		a, b Value
		want Ordering
	}{
		{NewInt(1), NewInt(2), Less},
		{NewInt(2), NewFloat(1.5), Greater},
		{NewString("b"), NewString("a"), Greater},
		{NewArray([]Value{NewInt(1)}), NewArray([]Value{NewInt(1), NewInt(0)}), Less},
		{locationValue(Location{X: 2, Y: 2}), locationValue(Location{X: 2, Y: 2}), Equal},
		{NewNil(), NewNil(), Equal},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got, err := CompareValues(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CompareValues(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
	if _, err := CompareValues(NewInt(1), NewString("1")); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("mixed kinds should be a type mismatch, got %v", err)
	}
	board := newFakeBoard()
	if _, err := CompareValues(NewCallable(NewMapCallable(board)), NewCallable(NewMapCallable(board))); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("distinct identity-compared callables should not order, got %v", err)
	}
}
