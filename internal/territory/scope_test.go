package territory

import "testing"

func TestScopeTier(t *testing.T) {
	cases := []struct {
		scope Scope
		want  Tier
	}{
		{Scope{State: "TX"}, TierState},
		{Scope{State: "TX", County: "Travis"}, TierCounty},
		{Scope{State: "TX", County: "Travis", City: "Austin"}, TierCity},
		{Scope{State: "TX", City: "Austin"}, TierCity},
		{Scope{State: "TX", County: "Travis", City: "Austin", Zip: "78701"}, TierZip},
		{Scope{State: "TX", City: "Austin", Zip: "78701"}, TierZip},
		{Scope{}, ""},
		{Scope{County: "Travis"}, ""},
		{Scope{Zip: "78701"}, ""},
		{Scope{State: "TX", Zip: "78701"}, ""},
	}
	for _, c := range cases {
		if got := c.scope.Tier(); got != c.want {
			t.Errorf("Tier(%+v) = %q; want %q", c.scope, got, c.want)
		}
	}
}

func TestFindBlanketCheckLadder(t *testing.T) {
	r := newTestResolver(nil,
		ck("TX", "Travis", "Austin", "", "Available"),
		ck("TX", "Travis", "", "", "Not Available"),
		ck("TX", "", "", "", "Available"),
		ck("TX", "Harris", "Houston", "77001", "Available"),
	)

	// Most specific wins.
	b := r.FindBlanketCheck(Scope{State: "TX", County: "Travis", City: "Austin"})
	if b == nil || b.City != "Austin" {
		t.Fatalf("expected city blanket, got %+v", b)
	}

	// A city with no blanket of its own climbs to the county blanket.
	b = r.FindBlanketCheck(Scope{State: "TX", County: "Travis", City: "Pflugerville"})
	if b == nil || b.County != "Travis" || b.City != UnspecifiedArea {
		t.Fatalf("expected county blanket, got %+v", b)
	}

	// A county with no blanket climbs to the state blanket.
	b = r.FindBlanketCheck(Scope{State: "TX", County: "Harris"})
	if b == nil || b.County != UnspecifiedCounty {
		t.Fatalf("expected state blanket, got %+v", b)
	}
}

func TestFindBlanketCheckCollapsedCounty(t *testing.T) {
	// Collapsed-form data files city checks under the sentinel county; a
	// county blanket there must govern county-less city scopes.
	r := newTestResolver(nil,
		ck("TX", "", "", "", "Not Available"),
		ck("TX", "", "Austin", "78701", "Available"),
	)
	b := r.FindBlanketCheck(Scope{State: "TX", City: "Austin"})
	if b == nil || !b.Blanket() {
		t.Fatalf("expected sentinel-county blanket, got %+v", b)
	}
}

func TestFindBlanketCheckNone(t *testing.T) {
	r := newTestResolver(nil,
		ck("TX", "Travis", "Austin", "78701", "Available"),
	)
	if b := r.FindBlanketCheck(Scope{State: "TX", County: "Travis", City: "Austin"}); b != nil {
		t.Errorf("expected nil, got %+v", b)
	}
	if b := r.FindBlanketCheck(Scope{}); b != nil {
		t.Errorf("expected nil for empty scope, got %+v", b)
	}
}
