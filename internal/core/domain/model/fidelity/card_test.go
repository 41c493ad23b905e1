package fidelity_test

import (
	"testing"

	"marketplace/internal/core/domain/model/fidelity"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced kernel.Money

func (p priced) Price() kernel.Money {
	return kernel.Money(p)
}

func order(amount string) priced {
	return priced(kernel.MustParseMoney(amount))
}

func sequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestFinalPriceBounds(t *testing.T) {
	prices := []string{"0", "0.01", "9.99", "50", "999.99", "1000", "2500"}
	cards := map[string]func() fidelity.Card{
		"basic":        func() fidelity.Card { return fidelity.NewBasicCard() },
		"point":        func() fidelity.Card { return fidelity.NewPointCard() },
		"lottery win":  func() fidelity.Card { return fidelity.NewLotteryCard(1, sequence(0)) },
		"lottery lose": func() fidelity.Card { return fidelity.NewLotteryCard(0, sequence(0.5)) },
	}

	for name, newCard := range cards {
		t.Run(name, func(t *testing.T) {
			card := newCard()
			// repeated settlement walks the point card through its discount states too
			for round := 0; round < 3; round++ {
				for _, p := range prices {
					o := order(p)

					final := card.FinalPrice(o)

					assert.False(t, final.IsNegative(), "price %s", p)
					assert.LessOrEqual(t, final.Cmp(o.Price()), 0, "price %s", p)
				}
			}
		})
	}
}

func TestBasicCard(t *testing.T) {
	card := fidelity.NewBasicCard()

	assert.True(t, card.OrderReduction(order("12")).IsZero())
	assert.Equal(t, "12.00", card.FinalPrice(order("12")).String())
	assert.Equal(t, fidelity.Basic, card.Kind())
}

func TestNew(t *testing.T) {
	assert.Equal(t, fidelity.Basic, fidelity.New(fidelity.Basic).Kind())
	assert.Equal(t, fidelity.Point, fidelity.New(fidelity.Point).Kind())

	lottery, ok := fidelity.New(fidelity.Lottery).(*fidelity.LotteryCard)
	require.True(t, ok)
	assert.InDelta(t, fidelity.DefaultWinProbability, lottery.WinProbability(), 0)
}

func TestParseKind(t *testing.T) {
	k, err := fidelity.ParseKind("lottery")
	require.NoError(t, err)
	assert.Equal(t, fidelity.Lottery, k)

	_, err = fidelity.ParseKind("gold")
	require.Error(t, err)
}
