package restaurant_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/restaurant"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(28.6139, 77.2090)
	require.NoError(t, err)
	return loc
}

func TestNewDish(t *testing.T) {
	t.Run("creates_valid_dish", func(t *testing.T) {
		// When
		dish, err := restaurant.NewDish("Butter Chicken", 300)

		// Then
		require.NoError(t, err)
		require.NoError(t, dish.Validate())
		assert.Equal(t, "Butter Chicken", dish.Name())
		assert.InDelta(t, 300.0, dish.Price(), 1e-9)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		// When
		_, err := restaurant.NewDish("", 300)

		// Then
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_non_positive_price", func(t *testing.T) {
		for _, price := range []float64{0, -10} {
			_, err := restaurant.NewDish("Garlic Naan", price)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("zero_value_dish_is_invalid", func(t *testing.T) {
		var dish restaurant.Dish
		require.Error(t, dish.Validate())
	})
}

func TestNewRestaurant(t *testing.T) {
	t.Run("creates_open_restaurant_with_empty_menu", func(t *testing.T) {
		// When
		r, err := restaurant.NewRestaurant(1, "Bistro Madras", testLocation(t))

		// Then
		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, int64(1), r.ID())
		assert.Equal(t, "Bistro Madras", r.Name())
		assert.True(t, r.IsOpen())
		assert.Empty(t, r.Menu())
	})

	t.Run("rejects_missing_id_or_name", func(t *testing.T) {
		_, err := restaurant.NewRestaurant(0, "Bistro Madras", testLocation(t))
		require.Error(t, err)

		_, err = restaurant.NewRestaurant(1, "", testLocation(t))
		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_location", func(t *testing.T) {
		var loc kernel.Location
		_, err := restaurant.NewRestaurant(1, "Bistro Madras", loc)
		require.Error(t, err)
	})
}

func TestRestaurant_OpenClose(t *testing.T) {
	// Given
	r, err := restaurant.NewRestaurant(1, "Bistro Madras", testLocation(t))
	require.NoError(t, err)

	// When / Then
	r.Close()
	assert.False(t, r.IsOpen())

	r.Reopen()
	assert.True(t, r.IsOpen())
}

func TestRestaurant_Menu(t *testing.T) {
	t.Run("keeps_insertion_order", func(t *testing.T) {
		// Given
		r, err := restaurant.NewRestaurant(1, "Bistro Madras", testLocation(t))
		require.NoError(t, err)

		butterChicken, err := restaurant.NewDish("Butter Chicken", 300)
		require.NoError(t, err)
		garlicNaan, err := restaurant.NewDish("Garlic Naan", 80)
		require.NoError(t, err)

		// When
		require.NoError(t, r.AddDish(butterChicken))
		require.NoError(t, r.AddDish(garlicNaan))

		// Then
		menu := r.Menu()
		require.Len(t, menu, 2)
		assert.Equal(t, "Butter Chicken", menu[0].Name())
		assert.Equal(t, "Garlic Naan", menu[1].Name())
	})

	t.Run("returned_menu_is_a_copy", func(t *testing.T) {
		// Given
		r, err := restaurant.NewRestaurant(1, "Bistro Madras", testLocation(t))
		require.NoError(t, err)
		dish, err := restaurant.NewDish("Butter Chicken", 300)
		require.NoError(t, err)
		require.NoError(t, r.AddDish(dish))

		// When
		menu := r.Menu()
		other, err := restaurant.NewDish("Paneer Tikka", 250)
		require.NoError(t, err)
		menu[0] = other

		// Then
		assert.Equal(t, "Butter Chicken", r.Menu()[0].Name())
	})

	t.Run("rejects_unconstructed_dish", func(t *testing.T) {
		r, err := restaurant.NewRestaurant(1, "Bistro Madras", testLocation(t))
		require.NoError(t, err)

		var dish restaurant.Dish
		require.Error(t, r.AddDish(dish))
	})
}
