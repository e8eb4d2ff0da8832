package container

import (
	"testing"

	"github.com/pixie-sh/errors-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	id int
}

type testAPI struct {
	logger *testLogger
}

func TestResolveWithDependencies(t *testing.T) {
	c := New()

	c.Register("logger", func(deps ...any) (any, error) {
		return &testLogger{id: 1}, nil
	})

	c.Register("api", func(deps ...any) (any, error) {
		return &testAPI{logger: deps[0].(*testLogger)}, nil
	}, WithDependencies("logger"))

	api, err := c.Resolve("api")
	require.NoError(t, err)
	require.NotNil(t, api)
	require.NotNil(t, api.(*testAPI).logger)
	assert.Equal(t, 1, api.(*testAPI).logger.id)
}

func TestSingletonIdentity(t *testing.T) {
	c := New()

	calls := 0
	c.Register("logger", func(deps ...any) (any, error) {
		calls++
		return &testLogger{id: calls}, nil
	})

	first, err := c.Resolve("logger")
	require.NoError(t, err)

	second, err := c.Resolve("logger")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

// literal scenario: a singleton shared between two resolutions of a
// dependent service must be constructed exactly once.
func TestSharedSingletonDependency(t *testing.T) {
	c := New()

	loggerCalls := 0
	c.Register("logger", func(deps ...any) (any, error) {
		loggerCalls++
		return &testLogger{id: loggerCalls}, nil
	})

	c.Register("api", func(deps ...any) (any, error) {
		return &testAPI{logger: deps[0].(*testLogger)}, nil
	}, WithDependencies("logger"))

	first, err := c.Resolve("api")
	require.NoError(t, err)

	second, err := c.Resolve("api")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first.(*testAPI).logger, second.(*testAPI).logger)
	assert.Equal(t, 1, loggerCalls)
}

func TestTransientFreshness(t *testing.T) {
	c := New()

	calls := 0
	c.Register("session", func(deps ...any) (any, error) {
		calls++
		return &testLogger{id: calls}, nil
	}, WithTransient())

	first, err := c.Resolve("session")
	require.NoError(t, err)

	second, err := c.Resolve("session")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, calls)
}

func TestResolveNotFound(t *testing.T) {
	c := New()

	_, err := c.Resolve("nonexistent")
	require.Error(t, err)

	_, notFound := errors.Has(err, ServiceNotFoundErrorCode)
	assert.True(t, notFound)
}

func TestRegisterInstanceTakesPrecedence(t *testing.T) {
	c := New()

	c.Register("config", func(deps ...any) (any, error) {
		return "from-factory", nil
	})
	c.RegisterInstance("config", "from-instance")

	value, err := c.Resolve("config")
	require.NoError(t, err)
	assert.Equal(t, "from-instance", value)
}

func TestReRegistrationLastWriteWins(t *testing.T) {
	c := New()

	c.Register("svc", func(deps ...any) (any, error) {
		return "first", nil
	})
	c.Register("svc", func(deps ...any) (any, error) {
		return "second", nil
	})

	value, err := c.Resolve("svc")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestFactoryFailurePropagatesAndNothingIsCached(t *testing.T) {
	c := New()

	calls := 0
	c.Register("flaky", func(deps ...any) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return "ok", nil
	})

	_, err := c.Resolve("flaky")
	require.Error(t, err)

	_, failed := errors.Has(err, FactoryExecutionErrorCode)
	assert.True(t, failed)

	// a failed resolution must not populate the singleton cache
	value, err := c.Resolve("flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, calls)
}

func TestHasAndCanResolve(t *testing.T) {
	parent := New()
	parent.Register("shared", func(deps ...any) (any, error) {
		return 1, nil
	})

	child := parent.CreateScope()
	child.RegisterInstance("local", 2)

	assert.True(t, parent.Has("shared"))
	assert.False(t, child.Has("shared"))
	assert.True(t, child.Has("local"))
	assert.True(t, child.CanResolve("shared"))
	assert.True(t, child.CanResolve("local"))
	assert.False(t, parent.CanResolve("local"))
	assert.False(t, child.CanResolve("missing"))
}

func TestNamesListsLocalRegistrationsSorted(t *testing.T) {
	c := New()
	c.Register("zeta", func(deps ...any) (any, error) { return 1, nil })
	c.RegisterInstance("alpha", 2)
	c.Register("mid", func(deps ...any) (any, error) { return 3, nil })

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Names())
}

func TestRegistrationIsChainable(t *testing.T) {
	c := New().
		RegisterInstance("one", 1).
		Register("two", func(deps ...any) (any, error) { return 2, nil }).
		Decorate("two", func(instance any) (any, error) { return instance, nil })

	two, err := c.Resolve("two")
	require.NoError(t, err)
	assert.Equal(t, 2, two)
}

func TestInvalidServiceNamePanics(t *testing.T) {
	c := New()

	assert.Panics(t, func() {
		c.Register("", func(deps ...any) (any, error) { return nil, nil })
	})
	assert.Panics(t, func() {
		c.RegisterInstance(".leading", 1)
	})
	assert.Panics(t, func() {
		c.RegisterInstance("trailing.", 1)
	})
	assert.Panics(t, func() {
		c.Decorate("double..dot", func(instance any) (any, error) { return instance, nil })
	})

	assert.NotPanics(t, func() {
		c.RegisterInstance("dotted.name", 1)
	})
}
