package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pizza = MenuItem{ID: "m1", Name: "Margherita Pizza", Price: 15000}
	pasta = MenuItem{ID: "m2", Name: "Carbonara", Price: 12000}
	soda  = MenuItem{ID: "m3", Name: "Soda", Price: 2000}
)

func TestAddOrUpdateItem_ReplacesQuantity(t *testing.T) {
	tests := []struct {
		name       string
		quantities []int
		want       int
	}{
		{"single add", []int{2}, 2},
		{"replace upward", []int{1, 3}, 3},
		{"replace downward", []int{5, 1}, 1},
		{"many updates keep last", []int{2, 7, 4, 9}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{}
			for _, q := range tt.quantities {
				require.NoError(t, o.AddOrUpdateItem(pizza, q))
			}
			assert.Equal(t, tt.want, o.Quantity(pizza.ID))
			assert.Equal(t, 1, o.Len())
		})
	}
}

func TestAddOrUpdateItem_RejectsNonPositive(t *testing.T) {
	o := &Order{}
	assert.ErrorIs(t, o.AddOrUpdateItem(pizza, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, o.AddOrUpdateItem(pizza, -3), ErrInvalidQuantity)
	assert.True(t, o.IsEmpty())

	require.NoError(t, o.AddOrUpdateItem(pizza, 2))
	assert.ErrorIs(t, o.AddOrUpdateItem(pizza, 0), ErrInvalidQuantity)
	assert.Equal(t, 2, o.Quantity(pizza.ID))
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(-1))
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 4, ClampQuantity(4))
}

func TestTotal_RecomputedAfterChanges(t *testing.T) {
	o := &Order{}
	require.NoError(t, o.AddOrUpdateItem(pizza, 2))
	require.NoError(t, o.AddOrUpdateItem(pasta, 1))
	require.NoError(t, o.AddOrUpdateItem(soda, 3))
	assert.Equal(t, int64(2*15000+12000+3*2000), o.Total())

	assert.True(t, o.RemoveItem(pasta.ID))
	assert.Equal(t, int64(2*15000+3*2000), o.Total())

	require.NoError(t, o.AddOrUpdateItem(soda, 1))
	assert.Equal(t, int64(2*15000+2000), o.Total())

	assert.False(t, o.RemoveItem("missing"))
	o.Reset()
	assert.Zero(t, o.Total())
	assert.True(t, o.IsEmpty())
}

func TestIncrementDecrement(t *testing.T) {
	o := &Order{}
	require.NoError(t, o.AddOrUpdateItem(pizza, 1))

	require.NoError(t, o.Increment(pizza.ID))
	assert.Equal(t, 2, o.Quantity(pizza.ID))

	require.NoError(t, o.Decrement(pizza.ID))
	require.NoError(t, o.Decrement(pizza.ID))
	require.NoError(t, o.Decrement(pizza.ID))
	assert.Equal(t, 1, o.Quantity(pizza.ID), "decrement is clamped")

	assert.ErrorIs(t, o.Increment("nope"), ErrItemNotInOrder)
	assert.ErrorIs(t, o.Decrement("nope"), ErrItemNotInOrder)
}

func TestLines_InsertionOrderAndCopy(t *testing.T) {
	o := &Order{}
	require.NoError(t, o.AddOrUpdateItem(pasta, 1))
	require.NoError(t, o.AddOrUpdateItem(pizza, 1))
	require.NoError(t, o.AddOrUpdateItem(pasta, 4))

	lines := o.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, pasta.ID, lines[0].ID)
	assert.Equal(t, pizza.ID, lines[1].ID)

	lines[0].Quantity = 99
	assert.Equal(t, 4, o.Quantity(pasta.ID))
}

func TestFromLines_DropsInvalid(t *testing.T) {
	o := FromLines([]Line{
		{MenuItem: pizza, Quantity: 2},
		{MenuItem: pasta, Quantity: 0},
		{MenuItem: pizza, Quantity: 5},
	})
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, 2, o.Quantity(pizza.ID))
	assert.Equal(t, int64(30000), o.Total())
}
