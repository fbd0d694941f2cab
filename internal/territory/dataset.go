package territory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Dataset is the normalized in-memory snapshot of territory checks, keyed
// state → county → city. The wire form may collapse the county level; the
// collapse is resolved once, here, so every traversal below works on a single
// shape. A Dataset is immutable after construction.
type Dataset struct {
	States map[string]*StateNode
}

type StateNode struct {
	Code     string
	Counties map[string]*CountyNode // keyed by foldName
}

type CountyNode struct {
	Name   string
	Cities map[string]*CityNode // keyed by foldName
}

type CityNode struct {
	Name   string
	Checks []Check
}

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// normalizeZip validates and canonicalizes a ZIP. ZIP+4 collapses to the
// 5-digit prefix. The second return is false for garbage values.
func normalizeZip(raw string) (string, bool) {
	z := strings.TrimSpace(raw)
	if z == "" {
		return "", true
	}
	if !zipPattern.MatchString(z) {
		return "", false
	}
	return z[:5], true
}

// NewDataset builds the normalized hierarchy from a flat check list. Checks
// with no state, or with a garbage ZIP, are dropped rather than allowed to
// poison resolution: a garbage ZIP cleared in place would silently promote the
// row to a blanket check.
func NewDataset(checks []Check) *Dataset {
	ds := &Dataset{States: make(map[string]*StateNode)}
	for _, c := range checks {
		c.State = normState(c.State)
		if c.State == "" {
			continue
		}
		zip, ok := normalizeZip(c.Zip)
		if !ok {
			continue
		}
		c.Zip = zip

		county := strings.TrimSpace(c.County)
		if county == "" {
			county = UnspecifiedCounty
		}
		city := strings.TrimSpace(c.City)
		if city == "" {
			city = UnspecifiedArea
		}
		c.County = county
		c.City = city

		st := ds.States[c.State]
		if st == nil {
			st = &StateNode{Code: c.State, Counties: make(map[string]*CountyNode)}
			ds.States[c.State] = st
		}
		co := st.Counties[foldName(county)]
		if co == nil {
			co = &CountyNode{Name: county, Cities: make(map[string]*CityNode)}
			st.Counties[foldName(county)] = co
		}
		ci := co.Cities[foldName(city)]
		if ci == nil {
			ci = &CityNode{Name: city}
			co.Cities[foldName(city)] = ci
		}
		ci.Checks = append(ci.Checks, c)
	}
	return ds
}

// wireCheck tolerates the field spellings that have shown up in exported
// check data over the years.
type wireCheck struct {
	ID              string      `json:"id"`
	RawLocation     string      `json:"raw_location"`
	State           string      `json:"state"`
	County          string      `json:"county"`
	City            string      `json:"city"`
	Zip             string      `json:"zip"`
	Coordinate      *Coordinate `json:"coordinate"`
	Lat             *float64    `json:"lat"`
	Lng             *float64    `json:"lng"`
	Verdict         string      `json:"verdict"`
	Status          string      `json:"status"`
	ServiceRadiusMi *float64    `json:"service_radius_mi"`
}

func (w wireCheck) toCheck(state, county, city string) Check {
	id, err := uuid.Parse(w.ID)
	if err != nil {
		id = uuid.Nil
	}
	verdict := w.Verdict
	if verdict == "" {
		verdict = w.Status
	}
	coord := w.Coordinate
	if coord == nil && w.Lat != nil && w.Lng != nil {
		coord = &Coordinate{Lat: *w.Lat, Lng: *w.Lng}
	}
	c := Check{
		ID:              id,
		RawLocation:     w.RawLocation,
		State:           state,
		County:          county,
		City:            city,
		Zip:             w.Zip,
		Coordinate:      coord,
		Verdict:         verdict,
		ServiceRadiusMi: w.ServiceRadiusMi,
	}
	if w.State != "" {
		c.State = w.State
	}
	if w.County != "" {
		c.County = w.County
	}
	if w.City != "" {
		c.City = w.City
	}
	return c
}

// DecodeDataset parses the exported dataset JSON. Both nesting forms are
// accepted, per state and independently per entry:
//
//	{"TX": {"Travis": {"Austin": [checks]}}}   four-level
//	{"TX": {"Austin": [checks]}}               three-level, county collapsed
//
// Shape is detected by probing each raw value: an array is a city's check
// list, an object is a county map. Entries that parse as neither are skipped;
// nothing here aborts the whole decode.
func DecodeDataset(data []byte) (*Dataset, error) {
	var states map[string]json.RawMessage
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("dataset is not a state map: %w", err)
	}

	var checks []Check
	for state, raw := range states {
		var secondLevel map[string]json.RawMessage
		if err := json.Unmarshal(raw, &secondLevel); err != nil {
			continue
		}
		for key, inner := range secondLevel {
			switch firstByte(inner) {
			case '[':
				// Collapsed form: key is a city directly under the state.
				checks = append(checks, decodeCheckList(inner, state, "", key)...)
			case '{':
				var cities map[string]json.RawMessage
				if err := json.Unmarshal(inner, &cities); err != nil {
					continue
				}
				for city, list := range cities {
					if firstByte(list) != '[' {
						continue
					}
					checks = append(checks, decodeCheckList(list, state, key, city)...)
				}
			}
		}
	}
	return NewDataset(checks), nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func decodeCheckList(raw json.RawMessage, state, county, city string) []Check {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]Check, 0, len(items))
	for _, item := range items {
		var w wireCheck
		if err := json.Unmarshal(item, &w); err != nil {
			continue
		}
		out = append(out, w.toCheck(state, county, city))
	}
	return out
}

// State returns the node for a state code, or nil.
func (ds *Dataset) State(code string) *StateNode {
	if ds == nil {
		return nil
	}
	return ds.States[normState(code)]
}

// County returns the county node, or nil. The name is matched through
// foldName, so "Travis County" finds the "Travis" entry.
func (ds *Dataset) County(state, county string) *CountyNode {
	st := ds.State(state)
	if st == nil {
		return nil
	}
	return st.Counties[foldName(county)]
}

// City returns the city node, or nil. An empty county falls back to the
// sentinel, covering datasets that arrived in the collapsed form.
func (ds *Dataset) City(state, county, city string) *CityNode {
	if county == "" {
		county = UnspecifiedCounty
	}
	co := ds.County(state, county)
	if co == nil {
		return nil
	}
	return co.Cities[foldName(city)]
}

// StateChecks yields every check under a state in no particular order.
func (ds *Dataset) StateChecks(state string) []Check {
	st := ds.State(state)
	if st == nil {
		return nil
	}
	var out []Check
	for _, co := range st.Counties {
		for _, ci := range co.Cities {
			out = append(out, ci.Checks...)
		}
	}
	return out
}

// ChecksIn yields the checks inside a scope, at whatever depth the scope
// reaches. An unresolvable scope yields nothing.
func (ds *Dataset) ChecksIn(s Scope) []Check {
	switch s.Tier() {
	case TierState:
		return ds.StateChecks(s.State)
	case TierCounty:
		co := ds.County(s.State, s.County)
		if co == nil {
			return nil
		}
		var out []Check
		for _, ci := range co.Cities {
			out = append(out, ci.Checks...)
		}
		return out
	case TierCity:
		node := ds.City(s.State, s.County, s.City)
		if node == nil {
			return nil
		}
		return node.Checks
	case TierZip:
		node := ds.City(s.State, s.County, s.City)
		if node == nil {
			return nil
		}
		var out []Check
		for _, c := range node.Checks {
			if c.Zip == s.Zip {
				out = append(out, c)
			}
		}
		return out
	default:
		return nil
	}
}

// CheckCount returns the total number of checks in the dataset.
func (ds *Dataset) CheckCount() int {
	if ds == nil {
		return 0
	}
	n := 0
	for _, st := range ds.States {
		for _, co := range st.Counties {
			for _, ci := range co.Cities {
				n += len(ci.Checks)
			}
		}
	}
	return n
}

// StateCodes returns the dataset's state codes, sorted.
func (ds *Dataset) StateCodes() []string {
	if ds == nil {
		return nil
	}
	codes := make([]string, 0, len(ds.States))
	for code := range ds.States {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// blanket returns the first check in the node with no ZIP, or nil.
func (n *CityNode) blanket() *Check {
	if n == nil {
		return nil
	}
	for i := range n.Checks {
		if n.Checks[i].Blanket() {
			return &n.Checks[i]
		}
	}
	return nil
}

// zipGroups buckets the node's ZIP-bearing checks by ZIP.
func (n *CityNode) zipGroups() map[string][]Check {
	if n == nil {
		return nil
	}
	groups := make(map[string][]Check)
	for _, c := range n.Checks {
		if c.Zip != "" {
			groups[c.Zip] = append(groups[c.Zip], c)
		}
	}
	return groups
}
