package notes

import (
	"sort"
	"strings"
)

// Generation classifies a platform into one of two hardware eras. The
// generation decides which default reproduction-steps template applies and
// which build number a promoted bug picks up from the header.
type Generation string

const (
	Gen4 Generation = "gen4"
	Gen5 Generation = "gen5"

	// GenUnknown is returned for platforms outside the recognized set.
	GenUnknown Generation = ""
)

// Platforms is the closed set of recognized platform identifiers,
// partitioned by generation. It is built once at process start and never
// mutated afterwards; every Engine shares one value by reference.
type Platforms struct {
	gen4 map[string]bool
	gen5 map[string]bool
	all  []string
}

// NewPlatforms builds a platform set from the two generation lists.
// Identifiers are lower-cased; duplicates across lists resolve to gen4.
func NewPlatforms(gen4, gen5 []string) *Platforms {
	p := &Platforms{
		gen4: make(map[string]bool, len(gen4)),
		gen5: make(map[string]bool, len(gen5)),
	}
	for _, name := range gen4 {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			p.gen4[name] = true
		}
	}
	for _, name := range gen5 {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !p.gen4[name] {
			p.gen5[name] = true
		}
	}
	p.all = make([]string, 0, len(p.gen4)+len(p.gen5))
	for name := range p.gen4 {
		p.all = append(p.all, name)
	}
	for name := range p.gen5 {
		p.all = append(p.all, name)
	}
	sort.Strings(p.all)
	return p
}

// DefaultPlatforms returns the stock platform set.
func DefaultPlatforms() *Platforms {
	return NewPlatforms(
		[]string{"nx1", "ps4", "xb1"},
		[]string{"nx2", "pc", "xbx", "ps5", "steamdeck", "laptop"},
	)
}

// Classify maps an arbitrary platform string to its generation. It is total:
// unrecognized values return GenUnknown, never an error.
func (p *Platforms) Classify(name string) Generation {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case p.gen4[name]:
		return Gen4
	case p.gen5[name]:
		return Gen5
	default:
		return GenUnknown
	}
}

// Contains reports whether name is a recognized platform.
func (p *Platforms) Contains(name string) bool {
	return p.Classify(name) != GenUnknown
}

// All returns the recognized platform names in sorted order.
func (p *Platforms) All() []string {
	out := make([]string, len(p.all))
	copy(out, p.all)
	return out
}
