package role

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/rstdoc/ir"
)

// localized role names, recognized without diagnostics.
var localized = map[string]Behavior{
	"title-reference": TitleReference,
	"title":           TitleReference,
	"t":               TitleReference,
	"emphasis":        Emphasis,
	"strong":          Strong,
	"literal":         Literal,
	"code":            Code,
	"subscript":       Subscript,
	"sub":             Subscript,
	"superscript":     Superscript,
	"sup":             Superscript,
	"abbreviation":    Abbreviation,
	"ab":              Abbreviation,
	"acronym":         Acronym,
	"ac":              Acronym,
	"pep-reference":   PEP,
	"pep":             PEP,
	"rfc-reference":   RFC,
	"rfc":             RFC,
	"raw":             Raw,
}

var canonical map[string]Behavior

func init() {
	canonical = make(map[string]Behavior, len(behaviorNames))
	for b, n := range behaviorNames {
		if b == Generic {
			continue
		}
		canonical[n] = b
	}
}

// Names returns the role names recognized without diagnostics, sorted.
func Names() []string {
	res := make([]string, 0, len(localized))
	for n := range localized {
		res = append(res, n)
	}
	slices.Sort(res)
	return res
}

// Lookup outcomes besides a direct hit.
type Lookup int

const (
	Found Lookup = iota
	// FallbackFound means the name was found among canonical names only
	// after the localized lookup failed.
	FallbackFound
	NotFound
)

// FallbackMessage is the informational message for a role name missing
// from the localized table.
func FallbackMessage(name string) string {
	return fmt.Sprintf("No role entry for %q in module \"en\".\nTrying %q as canonical role name.", name, name)
}

func UnknownMessage(name string) string {
	return fmt.Sprintf("Unknown interpreted text role %q.", name)
}

// Registry resolves role names for one document. Canonical roles are
// shared and read only; custom roles and the default role are per
// registry.
type Registry struct {
	custom  map[string]*Role
	builtin map[Behavior]*Role
	def     *Role

	PEPBase string
	RFCBase string
}

const (
	DefaultPEPBase = "http://www.python.org/dev/peps/"
	DefaultRFCBase = "http://tools.ietf.org/html/"
)

func NewRegistry() *Registry {
	r := &Registry{
		custom:  map[string]*Role{},
		builtin: map[Behavior]*Role{},
		PEPBase: DefaultPEPBase,
		RFCBase: DefaultRFCBase,
	}
	for b, n := range behaviorNames {
		r.builtin[b] = &Role{Name: n, Behavior: b, Decl: ir.NoNode}
	}
	r.def = r.builtin[TitleReference]
	return r
}

// Clone returns a registry with the same custom roles and bases.
func (r *Registry) Clone() *Registry {
	res := NewRegistry()
	res.PEPBase, res.RFCBase = r.PEPBase, r.RFCBase
	for k, v := range r.custom {
		res.custom[k] = v
	}
	res.def = r.def
	return res
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup resolves name: custom roles first, then localized names, then
// canonical names.
func (r *Registry) Lookup(name string) (*Role, Lookup) {
	key := normalize(name)
	if c, ok := r.custom[key]; ok {
		return c, Found
	}
	if b, ok := localized[key]; ok {
		return r.builtin[b], Found
	}
	if b, ok := canonical[key]; ok {
		return r.builtin[b], FallbackFound
	}
	return nil, NotFound
}

// Default returns the role of interpreted text without an explicit role.
func (r *Registry) Default() *Role {
	return r.def
}

// SetDefault changes the default role. An empty name restores
// title-reference.
func (r *Registry) SetDefault(name string) (Lookup, error) {
	if strings.TrimSpace(name) == "" {
		r.def = r.builtin[TitleReference]
		return Found, nil
	}
	role, how := r.Lookup(name)
	if role == nil {
		return how, fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
	r.def = role
	return how, nil
}

// Options returns the options a role derived from base accepts.
func Options(base *Role) []string {
	if base == nil {
		return []string{"class"}
	}
	switch base.Behavior {
	case Code:
		return []string{"class", "language"}
	case Raw:
		return []string{"class", "format"}
	}
	return []string{"class"}
}

// Define registers a custom role. base may be empty. opts holds the
// role directive's options, already checked against Options.
func (r *Registry) Define(name, base string, opts map[string]string, decl ir.NodeID) (*Role, Lookup, error) {
	how := Found
	res := &Role{Name: normalize(name), Behavior: Generic, Decl: decl, custom: true}
	if base != "" {
		b, h := r.Lookup(base)
		if b == nil {
			return nil, h, fmt.Errorf("%w: %q", ErrUnknownRole, base)
		}
		how = h
		res.Base = b
		res.Behavior = b.Behavior
	}
	if cls, ok := opts["class"]; ok {
		for _, c := range strings.Fields(cls) {
			if id := ir.MakeID(c); id != "" {
				res.Classes = append(res.Classes, id)
			}
		}
	} else {
		res.Classes = []string{res.Name}
	}
	res.Language = strings.TrimSpace(opts["language"])
	res.Format = strings.TrimSpace(opts["format"])
	r.custom[res.Name] = res
	return res, how, nil
}

// Customs lists the custom roles.
func (r *Registry) Customs() []*Role {
	res := make([]*Role, 0, len(r.custom))
	for _, c := range r.custom {
		res = append(res, c)
	}
	slices.SortFunc(res, func(a, b *Role) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res
}
