package content

import "fmt"

// Repository is an indexed, read-only view over a Pack. It is built once
// at startup and shared by the rules, the adventure resolver and the
// achievement evaluator.
type Repository struct {
	pack Pack

	items     map[string]int
	jobs      map[string]int
	studies   map[string]int
	locations map[string]int
}

// NewRepository indexes p. Duplicate or empty ids are rejected.
func NewRepository(p Pack) (*Repository, error) {
	r := &Repository{pack: p}
	var err error
	if r.items, err = index("item", len(p.Items), func(i int) string { return p.Items[i].ID }); err != nil {
		return nil, err
	}
	if r.jobs, err = index("job", len(p.Jobs), func(i int) string { return p.Jobs[i].ID }); err != nil {
		return nil, err
	}
	if r.studies, err = index("study", len(p.Studies), func(i int) string { return p.Studies[i].ID }); err != nil {
		return nil, err
	}
	if r.locations, err = index("adventure", len(p.Adventures), func(i int) string { return p.Adventures[i].ID }); err != nil {
		return nil, err
	}
	if _, err = index("achievement", len(p.Achievements), func(i int) string { return p.Achievements[i].ID }); err != nil {
		return nil, err
	}
	return r, nil
}

func index(kind string, n int, id func(int) string) (map[string]int, error) {
	m := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := id(i)
		if key == "" {
			return nil, fmt.Errorf("content: %s #%d has no id", kind, i)
		}
		if _, dup := m[key]; dup {
			return nil, fmt.Errorf("content: duplicate %s id %q", kind, key)
		}
		m[key] = i
	}
	return m, nil
}

// Item looks up an item by id.
func (r *Repository) Item(id string) (Item, bool) {
	i, ok := r.items[id]
	if !ok {
		return Item{}, false
	}
	return r.pack.Items[i], true
}

// Items returns every item in pack order.
func (r *Repository) Items() []Item { return r.pack.Items }

// Job looks up a job by id.
func (r *Repository) Job(id string) (Job, bool) {
	i, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return r.pack.Jobs[i], true
}

// Jobs returns every job in pack order.
func (r *Repository) Jobs() []Job { return r.pack.Jobs }

// Study looks up a study by id.
func (r *Repository) Study(id string) (Study, bool) {
	i, ok := r.studies[id]
	if !ok {
		return Study{}, false
	}
	return r.pack.Studies[i], true
}

// Studies returns every study in pack order.
func (r *Repository) Studies() []Study { return r.pack.Studies }

// Location looks up an adventure location by id.
func (r *Repository) Location(id string) (Location, bool) {
	i, ok := r.locations[id]
	if !ok {
		return Location{}, false
	}
	return r.pack.Adventures[i], true
}

// Locations returns every adventure location in pack order.
func (r *Repository) Locations() []Location { return r.pack.Adventures }

// Achievements returns every achievement in pack order.
func (r *Repository) Achievements() []Achievement { return r.pack.Achievements }

// Lines returns the dialog pool for key, or nil.
func (r *Repository) Lines(key string) []string { return r.pack.Dialog[key] }
