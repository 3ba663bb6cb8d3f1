package guard_test

import (
	"errors"
	"testing"

	"repairshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("appointment not constructed")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInStruct(t *testing.T) {
	type slot struct {
		minutes int
		guard   guard.ConstructorGuard
	}
	errSlotNotConstructed := errors.New("slot must be created via newSlot")

	newSlot := func(minutes int) slot {
		return slot{minutes: minutes, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructor_result_is_valid", func(t *testing.T) {
		s := newSlot(30)
		require.NoError(t, s.guard.Validate(errSlotNotConstructed))
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		s := slot{minutes: 30}
		require.ErrorIs(t, s.guard.Validate(errSlotNotConstructed), errSlotNotConstructed)
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		s := newSlot(45)
		cp := s
		require.NoError(t, cp.guard.Validate(errSlotNotConstructed))
	})
}
