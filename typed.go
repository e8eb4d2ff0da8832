package container

import (
	"github.com/pixie-sh/errors-go"
)

// Resolve is the typed counterpart of Container.Resolve. It resolves name
// from c and asserts the result to T through SafeTypeAssert.
func Resolve[T any](c *Container, name string) (T, error) {
	var typed T

	unknown, err := c.Resolve(name)
	if err != nil {
		return typed, err
	}

	typed, ok := SafeTypeAssert[T](unknown)
	if !ok {
		return typed, errors.New("service '%s' resolved to %T, not the requested type", name, unknown, ServiceTypeMismatchErrorCode)
	}

	return typed, nil
}

// MustResolve is Resolve for wiring paths where a failure is a configuration
// defect: it panics instead of returning an error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	errors.Must(err)
	return typed
}

// RegisterNode decodes the configuration node at path into T and registers
// the result as an instance under name. Configuration values become plain
// injectable services; decorators registered for name still apply.
func RegisterNode[T any](c *Container, name string, cfg Configuration, path string) error {
	node, err := cfg.LookupNode(path)
	if err != nil {
		return errors.Wrap(err, "configuration node '%s' for service '%s' not found", path, name, ConfigurationLookupErrorCode)
	}

	typed, err := Decode[T](node)
	if err != nil {
		return errors.Wrap(err, "configuration node '%s' cannot be decoded for service '%s'", path, name, ConfigurationLookupErrorCode)
	}

	c.RegisterInstance(name, typed)
	return nil
}
