package guard_test

import (
	"errors"
	"testing"

	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("plan not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuardEmbeddedInCommand(t *testing.T) {
	type countCommand struct {
		sku   string
		guard guard.ConstructorGuard
	}
	errNotConstructed := errors.New("countCommand must be created via newCountCommand")

	newCountCommand := func(sku string) (countCommand, error) {
		if sku == "" {
			return countCommand{}, errors.New("sku is required")
		}
		return countCommand{sku: sku, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newCountCommand("SKU-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, "SKU-1", cmd.sku)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := countCommand{sku: "SKU-1"}

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})
}
