package ability

import (
	"slices"
	"strings"
	"sync"

	"github.com/KirkDiggler/psychics/internal/config"
	"github.com/KirkDiggler/psychics/internal/errors"
)

// Built-in ability types
const (
	TypeGeneric    = "generic"
	TypeProjectile = "projectile"
)

// Registry maps ability type names to their initialization hooks
type Registry struct {
	mu    sync.RWMutex
	hooks map[string]Hook
}

// NewRegistry returns a registry holding the built-in types
func NewRegistry() *Registry {
	r := &Registry{hooks: make(map[string]Hook)}
	r.hooks[TypeGeneric] = nil
	r.hooks[TypeProjectile] = validateProjectile
	return r
}

// Register adds an ability type
func (r *Registry) Register(kind string, hook Hook) error {
	if kind == "" {
		return errors.InvalidArgument("ability type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hooks[kind]; ok {
		return errors.AlreadyExistsf("ability type %s already registered", kind)
	}
	r.hooks[kind] = hook
	return nil
}

// Types returns the registered type names, sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.hooks))
	for kind := range r.hooks {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Create builds and binds an ability from one entry of a psychic's
// abilities list. The entry needs a name; type defaults to generic.
func (r *Registry) Create(section *config.Section) (*Concept, error) {
	name, ok := stringValue(section, KeyName)
	if !ok || name == "" {
		return nil, errors.InvalidArgument("ability name is required")
	}

	kind := TypeGeneric
	if raw, present := section.Get(KeyType); present {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.InvalidArgumentf("ability %s: type must be a string", name)
		}
		kind = s
	}

	r.mu.RLock()
	hook, ok := r.hooks[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.InvalidArgumentf("ability %s: unknown type %q, known types: %s",
			name, kind, strings.Join(r.Types(), ", ")).
			WithMeta("ability", name)
	}

	concept := NewConcept(kind, hook)
	if err := concept.Initialize(name, section); err != nil {
		return nil, err
	}
	return concept, nil
}

func stringValue(section *config.Section, key string) (string, bool) {
	raw, ok := section.Get(key)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

func validateProjectile(c *Concept) error {
	if c.Range() <= 0 {
		return errors.FailedPreconditionf("projectile %s needs a range", c.Name())
	}
	return nil
}
