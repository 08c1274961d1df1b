package authors

// Entity is one distinct author
type Entity struct {
	ID   int
	Name string
}

// Registry hands out sequential ids by exact name, starting at 1.
// Ids are never reused and names are never removed. Not safe for concurrent use.
type Registry struct {
	ids    map[string]int
	order  []string
	nextID int
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int), nextID: 1}
}

// Resolve returns the id for name, registering it when unseen
func (r *Registry) Resolve(name string) (id int, created bool) {
	if id, ok := r.ids[name]; ok {
		return id, false
	}
	id = r.nextID
	r.nextID++
	r.ids[name] = id
	r.order = append(r.order, name)
	return id, true
}

// Len is the number of distinct names
func (r *Registry) Len() int { return len(r.order) }

// Entities lists every author by ascending id
func (r *Registry) Entities() []Entity {
	out := make([]Entity, len(r.order))
	for i, name := range r.order {
		out[i] = Entity{ID: r.ids[name], Name: name}
	}
	return out
}
