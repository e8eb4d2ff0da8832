// Package container provides a small dependency injection runtime: named
// service factories with declared dependencies, singleton caching, cycle
// detection, ordered decorators and hierarchical child scopes that fall
// back to a parent container.
package container

import (
	"sort"
	"sync"

	"github.com/pixie-sh/errors-go"
	"github.com/pixie-sh/logger-go/logger"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// Container owns the service registry, the instance map for directly
// registered values, the lazily populated singleton cache and the per-name
// decorator lists. A container created through CreateScope keeps a weak
// back-reference to its parent; the parent never sees the child.
//
// All registration methods are chainable and safe for concurrent use.
type Container struct {
	mu         sync.RWMutex
	registry   map[string]registration
	instances  map[string]any
	singletons map[string]any
	decorators map[string][]Decorator

	parent *Container

	flight singleflight.Group
	log    logger.Interface
}

// New creates an empty root container.
func New(options ...Option) *Container {
	c := &Container{
		registry:   map[string]registration{},
		instances:  map[string]any{},
		singletons: map[string]any{},
		decorators: map[string][]Decorator{},
		log:        logger.Logger,
	}

	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Register stores a factory definition under name, overwriting any prior
// entry for the same name in this container. Services are singletons unless
// WithTransient is passed. Re-registration does not clear an already cached
// singleton or instance for the same name; it is only safe before the first
// resolution of anything depending on name.
//
// An invalid service name panics; it is a programming error, not a runtime
// condition.
func (c *Container) Register(name string, factory Factory, options ...RegisterOption) *Container {
	errors.Must(validateServiceName(name))

	reg := registration{factory: factory, singleton: true}
	for _, opt := range options {
		if opt != nil {
			opt(&reg)
		}
	}

	c.mu.Lock()
	c.registry[name] = reg
	c.mu.Unlock()

	c.log.With("service", name).With("dependencies", reg.dependencies).Debug("service registered")
	return c
}

// RegisterInstance stores an externally constructed value under name,
// bypassing the factory pipeline. The value is treated as already resolved
// and already singleton; decorators registered for the same name still apply
// on first resolution. Instance registrations take precedence over factory
// registrations for the same name.
func (c *Container) RegisterInstance(name string, value any) *Container {
	errors.Must(validateServiceName(name))

	c.mu.Lock()
	c.instances[name] = value
	c.mu.Unlock()

	c.log.With("service", name).Debug("instance registered")
	return c
}

// Decorate appends fn to the ordered decorator list for name. Decorators run
// in registration order after construction and before caching; the output of
// each is the input of the next.
func (c *Container) Decorate(name string, fn Decorator) *Container {
	errors.Must(validateServiceName(name))

	c.mu.Lock()
	c.decorators[name] = append(c.decorators[name], fn)
	c.mu.Unlock()

	return c
}

// Has reports whether name is registered in this container, ignoring any
// parent scope.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.instances[name]; ok {
		return true
	}

	if _, ok := c.singletons[name]; ok {
		return true
	}

	_, ok := c.registry[name]
	return ok
}

// CanResolve reports whether name is resolvable from this container,
// walking the parent chain.
func (c *Container) CanResolve(name string) bool {
	if c.Has(name) {
		return true
	}

	if c.parent != nil {
		return c.parent.CanResolve(name)
	}

	return false
}

// Names returns the sorted service names registered locally in this
// container, factories and instances alike. Parent registrations are not
// included.
func (c *Container) Names() []string {
	c.mu.RLock()
	names := lo.Uniq(append(lo.Keys(c.registry), lo.Keys(c.instances)...))
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Parent returns the container this scope falls back to, or nil for a root.
func (c *Container) Parent() *Container {
	return c.parent
}
