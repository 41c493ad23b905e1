package menu_test

import (
	"testing"

	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu(t *testing.T) {
	m := menu.NewMenu(nil)
	soup := dish(t, "Soup", "10", menu.Starter)
	steak := dish(t, "Steak", "30", menu.Main)
	cake := dish(t, "Cake", "6", menu.Dessert)
	for _, d := range []*menu.Dish{soup, steak, cake} {
		require.NoError(t, m.AddDish(d))
	}

	t.Run("duplicate dish name", func(t *testing.T) {
		err := m.AddDish(dish(t, "Soup", "1", menu.Starter))

		require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
		assert.Len(t, m.Dishes(), 3)
	})

	t.Run("meal of own dishes", func(t *testing.T) {
		lunch, err := menu.NewHalfMeal("Lunch", soup, steak, m.Pricing(menu.GeneralPricing))
		require.NoError(t, err)

		require.NoError(t, m.AddMeal(lunch))

		got, err := m.Meal("Lunch")
		require.NoError(t, err)
		assert.Same(t, lunch, got)
	})

	t.Run("meal name collides with dish name", func(t *testing.T) {
		meal, err := menu.NewHalfMeal("Cake", steak, cake, m.Pricing(menu.GeneralPricing))
		require.NoError(t, err)

		require.ErrorIs(t, m.AddMeal(meal), errs.ErrObjectAlreadyExists)
	})

	t.Run("meal using a foreign dish", func(t *testing.T) {
		foreign := dish(t, "Steak", "30", menu.Main)
		meal, err := menu.NewHalfMeal("Dinner", foreign, cake, m.Pricing(menu.GeneralPricing))
		require.NoError(t, err)

		require.ErrorIs(t, m.AddMeal(meal), menu.ErrDishNotOnMenu)
		_, err = m.Meal("Dinner")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("item resolution", func(t *testing.T) {
		it, err := m.Item("Soup")
		require.NoError(t, err)
		assert.False(t, it.IsMeal())

		it, err = m.Item("Lunch")
		require.NoError(t, err)
		assert.True(t, it.IsMeal())

		_, err = m.Item("Pizza")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		_, err = m.Dish("Lunch")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestMenu_MealOfTheWeekRotation(t *testing.T) {
	m := menu.NewMenu(menu.DefaultDiscountRates())
	assert.Nil(t, m.NextMealOfTheWeek())

	soup := dish(t, "Soup", "10", menu.Starter)
	steak := dish(t, "Steak", "30", menu.Main)
	cake := dish(t, "Cake", "6", menu.Dessert)
	for _, d := range []*menu.Dish{soup, steak, cake} {
		require.NoError(t, m.AddDish(d))
	}
	a, err := menu.NewHalfMeal("A", soup, steak, m.Pricing(menu.GeneralPricing))
	require.NoError(t, err)
	b, err := menu.NewFullMeal("B", soup, steak, cake, m.Pricing(menu.GeneralPricing))
	require.NoError(t, err)
	require.NoError(t, m.AddMeal(a))
	require.NoError(t, m.AddMeal(b))

	assert.Same(t, a, m.NextMealOfTheWeek())

	_, err = a.SetPricing(m.Pricing(menu.MealOfTheWeekPricing))
	require.NoError(t, err)
	assert.Equal(t, []*menu.Meal{a}, m.MealsOfTheWeek())
	assert.Same(t, b, m.NextMealOfTheWeek())

	_, err = b.SetPricing(m.Pricing(menu.MealOfTheWeekPricing))
	require.NoError(t, err)
	assert.Same(t, a, m.NextMealOfTheWeek(), "wraps around")
}
