package container

import "github.com/pixie-sh/logger-go/logger"

// Option customises a container created with New.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution debug
// entries. Child scopes inherit the parent's logger.
func WithLogger(log logger.Interface) Option {
	return func(c *Container) {
		c.log = log
	}
}
