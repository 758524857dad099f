package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicate is returned when a profile name is already registered.
var ErrDuplicate = errors.New("duplicate profile name")

// ColumnSpec lists, per semantic field, the header synonyms to try in priority order.
type ColumnSpec struct {
	Date        []string `yaml:"date" json:"date"`
	Time        []string `yaml:"time,omitempty" json:"time,omitempty"`
	Description []string `yaml:"description,omitempty" json:"description,omitempty"`
	Income      []string `yaml:"income,omitempty" json:"income,omitempty"`
	Expense     []string `yaml:"expense,omitempty" json:"expense,omitempty"`
}

// Profile describes one institution's export format. Which generic header
// denotes inflow and which outflow is decided here, never inferred.
type Profile struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Columns     ColumnSpec `yaml:"columns" json:"columns"`
}

// Validate checks that the profile can resolve a date and at least one amount.
func (p Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("profile name is required"))
	}
	if len(p.Columns.Date) == 0 {
		errs = append(errs, errors.New("profile needs at least one date column"))
	}
	if len(p.Columns.Income) == 0 && len(p.Columns.Expense) == 0 {
		errs = append(errs, errors.New("profile needs an income or expense column"))
	}
	return errors.Join(errs...)
}

// Registry holds named profiles.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]Profile)}
}

// Register adds a profile. Panics on duplicate name.
func (r *Registry) Register(p Profile) {
	key := strings.ToLower(p.Name)
	if _, ok := r.profiles[key]; ok {
		panic("duplicate profile: " + key)
	}
	r.profiles[key] = p
}

// Has reports whether a profile with this name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.profiles[strings.ToLower(name)]
	return ok
}

// Get returns the profile for name.
func (r *Registry) Get(name string) (Profile, bool) {
	p, ok := r.profiles[strings.ToLower(name)]
	return p, ok
}

// Names returns all registered profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered profiles sorted by name.
func (r *Registry) All() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, name := range r.Names() {
		p, _ := r.Get(name)
		out = append(out, p)
	}
	return out
}

// Add registers a user-defined profile, rejecting invalid profiles and
// names that are already taken.
func (r *Registry) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	if r.Has(p.Name) {
		return fmt.Errorf("profile %q: %w", p.Name, ErrDuplicate)
	}
	r.profiles[strings.ToLower(p.Name)] = p
	return nil
}
