package container

import (
	"slices"
	"strings"

	"github.com/pixie-sh/errors-go"
)

// resolution tracks the active factory chain of a single top-level Resolve
// call. It is call-stack scoped, never stored on the container, so two
// independent resolutions cannot spuriously detect a cycle against each
// other. The chain doubles as the breadcrumb trail reported on a cycle.
type resolution struct {
	chain  []string
	active map[string]struct{}
}

func newResolution() *resolution {
	return &resolution{active: map[string]struct{}{}}
}

func (r *resolution) entered(name string) bool {
	_, ok := r.active[name]
	return ok
}

func (r *resolution) enter(name string) {
	r.chain = append(r.chain, name)
	r.active[name] = struct{}{}
}

func (r *resolution) exit(name string) {
	r.chain = r.chain[:len(r.chain)-1]
	delete(r.active, name)
}

func (r *resolution) cyclePath(name string) string {
	return strings.Join(append(slices.Clone(r.chain), name), " -> ")
}

// Resolve returns the fully constructed, decorated instance for name.
//
// Lookup order: singleton cache, instance registrations, local factory
// registrations, then the parent scope. Failures carry an error code from
// error_codes.go and leave no partial state in the singleton cache.
func (c *Container) Resolve(name string) (any, error) {
	return c.resolve(name, newResolution())
}

func (c *Container) resolve(name string, res *resolution) (any, error) {
	c.mu.RLock()
	cached, isCached := c.singletons[name]
	value, isInstance := c.instances[name]
	reg, isRegistered := c.registry[name]
	c.mu.RUnlock()

	if isCached {
		return cached, nil
	}

	if isInstance {
		return c.once(name, func() (any, error) {
			return c.applyDecorators(name, value)
		})
	}

	if isRegistered {
		if res.entered(name) {
			return nil, errors.New("circular dependency detected: %s", res.cyclePath(name), CircularDependencyErrorCode)
		}

		if !reg.singleton {
			return c.construct(name, reg, res)
		}

		return c.once(name, func() (any, error) {
			return c.construct(name, reg, res)
		})
	}

	if c.parent != nil {
		// Only the requested name is delegated; the parent resolves it,
		// dependencies included, entirely within its own scope.
		instance, err := c.parent.Resolve(name)
		if err != nil {
			if _, missing := errors.Has(err, ServiceNotFoundErrorCode); missing {
				return nil, errors.Wrap(err, "service '%s' not found, %d scope(s) searched", name, c.depth(), ServiceNotFoundErrorCode)
			}

			return nil, err
		}

		return instance, nil
	}

	return nil, errors.New("no registration found for service '%s'", name, ServiceNotFoundErrorCode)
}

// once builds a singleton value through the flight group so that concurrent
// resolutions of the same unresolved name share a single factory invocation.
// The cycle check in resolve runs before joining the flight, so a cyclic
// chain fails instead of waiting on itself. Nothing is cached on failure;
// the flight forgets the key and a later call retries.
func (c *Container) once(name string, build func() (any, error)) (any, error) {
	shared, err, _ := c.flight.Do(name, func() (any, error) {
		c.mu.RLock()
		done, ok := c.singletons[name]
		c.mu.RUnlock()
		if ok {
			return done, nil
		}

		instance, err := build()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.singletons[name] = instance
		c.mu.Unlock()

		return instance, nil
	})
	if err != nil {
		return nil, err
	}

	return shared, nil
}

// construct resolves the declared dependencies in order, invokes the factory
// and runs the decorator chain. Dependency failures propagate untouched so
// the caller still sees the original error code.
func (c *Container) construct(name string, reg registration, res *resolution) (any, error) {
	res.enter(name)
	defer res.exit(name)

	deps := make([]any, 0, len(reg.dependencies))
	for _, dep := range reg.dependencies {
		resolved, err := c.resolve(dep, res)
		if err != nil {
			return nil, err
		}

		deps = append(deps, resolved)
	}

	instance, err := reg.factory(deps...)
	if err != nil {
		return nil, errors.Wrap(err, "factory for service '%s' failed", name, FactoryExecutionErrorCode)
	}

	c.log.With("service", name).Debug("service constructed")
	return c.applyDecorators(name, instance)
}

func (c *Container) applyDecorators(name string, instance any) (any, error) {
	c.mu.RLock()
	decorators := c.decorators[name]
	c.mu.RUnlock()

	for i, decorate := range decorators {
		next, err := decorate(instance)
		if err != nil {
			return nil, errors.Wrap(err, "decorator %d for service '%s' failed", i, name, DecoratorExecutionErrorCode)
		}

		instance = next
	}

	return instance, nil
}

func (c *Container) depth() int {
	if c.parent == nil {
		return 1
	}

	return 1 + c.parent.depth()
}
