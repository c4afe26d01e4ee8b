package domain

import (
	"sort"
	"strings"
)

// IDSet is the set of expanded accordion rows, carried in a comma separated query value.
type IDSet map[string]struct{}

func ParseIDSet(s string) IDSet {
	set := IDSet{}
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) String() string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// Toggle returns the encoded set with id flipped, leaving s untouched.
func (s IDSet) Toggle(id string) string {
	next := make(IDSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if next.Has(id) {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next.String()
}
