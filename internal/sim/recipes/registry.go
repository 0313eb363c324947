package recipes

// Registry is the append-only list of every recipe known to the game, in
// registration order. Nothing in the uncrafting code mutates it.
type Registry struct {
	list []Recipe
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Register(rec Recipe) {
	if rec == nil {
		return
	}
	r.list = append(r.list, rec)
}

// Recipes returns the registered recipes. Callers must not modify the slice.
func (r *Registry) Recipes() []Recipe {
	if r == nil {
		return nil
	}
	return r.list
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}
