// File: speechrules/prefs/set.go
package prefs

import "sort"

// PreferenceSet maps preference names to values. Names are case-sensitive.
type PreferenceSet map[string]Value

// NewPreferenceSet returns an empty PreferenceSet.
func NewPreferenceSet() PreferenceSet {
	return make(PreferenceSet)
}

// Get returns the value stored under name.
func (ps PreferenceSet) Get(name string) (Value, bool) {
	v, ok := ps[name]
	return v, ok
}

// Set stores v under name, replacing any existing value.
func (ps PreferenceSet) Set(name string, v Value) {
	ps[name] = v
}

// Clone returns an independent copy of the set.
func (ps PreferenceSet) Clone() PreferenceSet {
	out := make(PreferenceSet, len(ps))
	for name, v := range ps {
		out[name] = v
	}
	return out
}

// Merge returns a new set holding the receiver overlaid by over; ties go to
// over. Neither input is modified.
func (ps PreferenceSet) Merge(over PreferenceSet) PreferenceSet {
	out := ps.Clone()
	for name, v := range over {
		out[name] = v
	}
	return out
}

// Names returns the preference names in sorted order.
func (ps PreferenceSet) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
