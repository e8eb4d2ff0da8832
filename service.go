package container

import (
	"github.com/pixie-sh/errors-go"
)

// Factory constructs a service instance from its already-resolved dependencies.
// Dependencies are passed in the order they were declared at registration time.
type Factory func(deps ...any) (any, error)

// Decorator transforms a resolved instance before it is cached and returned.
// It may return the same instance mutated, or a wrapping value.
type Decorator func(instance any) (any, error)

// registration holds a factory definition: how to build a service,
// which services it needs first, and whether the result is cached.
type registration struct {
	factory      Factory
	dependencies []string
	singleton    bool
}

// RegisterOption customises a single Register call.
type RegisterOption func(*registration)

// WithDependencies declares the services the factory needs, in the order
// the factory expects to receive them.
func WithDependencies(names ...string) RegisterOption {
	return func(r *registration) {
		r.dependencies = names
	}
}

// WithTransient disables singleton caching; the factory runs on every resolution.
func WithTransient() RegisterOption {
	return func(r *registration) {
		r.singleton = false
	}
}

// validateServiceName enforces the naming rules shared by every registration
// entry point. A service name must not:
// - Be empty
// - Start or end with a dot
// - Contain consecutive dots
func validateServiceName(name string) error {
	if name == "" {
		return errors.New("service name cannot be empty", InvalidServiceNameErrorCode)
	}

	for i, r := range name {
		if r == '.' {
			if i == 0 || i == len(name)-1 {
				return errors.New("service name %s cannot start or end with a dot", name, InvalidServiceNameErrorCode)
			}

			if name[i-1] == '.' {
				return errors.New("service name %s cannot contain consecutive dots", name, InvalidServiceNameErrorCode)
			}
		}
	}

	return nil
}
