package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ecotrack/internal/domain/entity"
)

func recyclingTemplate() entity.BadgeTemplate {
	return entity.BadgeTemplate{
		ID:             "recycling-hero",
		Name:           "Recycling Hero",
		Category:       "recycling",
		CounterToCheck: "recyclingActions",
		Levels: []entity.BadgeLevel{
			{Level: 1, RequiredCount: 5},
			{Level: 2, RequiredCount: 10},
		},
	}
}

func TestComputeProgressPartway(t *testing.T) {
	calc := NewCalculator(nil)

	views := calc.ComputeProgress(
		entity.UserCounters{"recyclingActions": 7},
		entity.EarnedBadges{},
		[]entity.BadgeTemplate{recyclingTemplate()},
	)

	if assert.Len(t, views, 1) {
		view := views[0]
		assert.Equal(t, 1, view.CurrentLevel)
		assert.True(t, view.IsEarned)
		assert.Equal(t, int64(7), view.CurrentCount)
		if assert.NotNil(t, view.NextLevelData) {
			assert.Equal(t, int64(10), view.NextLevelData.RequiredCount)
		}
		assert.Equal(t, 40.0, view.Progress)
		assert.Equal(t, "7/10", view.ProgressText)
	}
}

func TestComputeProgressMaxed(t *testing.T) {
	calc := NewCalculator(nil)

	views := calc.ComputeProgress(
		entity.UserCounters{"recyclingActions": 10},
		entity.EarnedBadges{},
		[]entity.BadgeTemplate{recyclingTemplate()},
	)

	if assert.Len(t, views, 1) {
		view := views[0]
		assert.Equal(t, 2, view.CurrentLevel)
		assert.True(t, view.IsEarned)
		assert.Nil(t, view.NextLevelData)
		assert.Equal(t, 100.0, view.Progress)
		assert.Equal(t, AllLevelsComplete, view.ProgressText)
	}
}

func TestComputeProgressInclusiveThreshold(t *testing.T) {
	calc := NewCalculator(nil)
	catalog := []entity.BadgeTemplate{recyclingTemplate()}

	below := calc.ComputeProgress(entity.UserCounters{"recyclingActions": 4}, nil, catalog)
	assert.Equal(t, 0, below[0].CurrentLevel)
	assert.False(t, below[0].IsEarned)

	exact := calc.ComputeProgress(entity.UserCounters{"recyclingActions": 5}, nil, catalog)
	assert.Equal(t, 1, exact[0].CurrentLevel)
	assert.True(t, exact[0].IsEarned)
}

func TestComputeProgressMissingCounterIsZero(t *testing.T) {
	calc := NewCalculator(nil)

	views := calc.ComputeProgress(entity.UserCounters{}, nil, []entity.BadgeTemplate{recyclingTemplate()})

	view := views[0]
	assert.Equal(t, 0, view.CurrentLevel)
	assert.Equal(t, int64(0), view.CurrentCount)
	assert.Equal(t, 0.0, view.Progress)
	assert.Equal(t, "0/5", view.ProgressText)
}

func TestComputeProgressNegativeCounterClamped(t *testing.T) {
	calc := NewCalculator(nil)

	views := calc.ComputeProgress(entity.UserCounters{"recyclingActions": -3}, nil, []entity.BadgeTemplate{recyclingTemplate()})

	assert.Equal(t, int64(0), views[0].CurrentCount)
	assert.Equal(t, 0, views[0].CurrentLevel)
	assert.Equal(t, 0.0, views[0].Progress)
}

func TestComputeProgressBounds(t *testing.T) {
	calc := NewCalculator(nil)
	catalog := []entity.BadgeTemplate{recyclingTemplate()}

	for _, count := range []int64{0, 1, 4, 5, 7, 9, 10, 11, 10000} {
		views := calc.ComputeProgress(entity.UserCounters{"recyclingActions": count}, nil, catalog)
		assert.GreaterOrEqual(t, views[0].Progress, 0.0, "count=%d", count)
		assert.LessOrEqual(t, views[0].Progress, 100.0, "count=%d", count)
	}
}

func TestComputeProgressMonotonicLevels(t *testing.T) {
	calc := NewCalculator(nil)
	catalog := []entity.BadgeTemplate{recyclingTemplate()}

	prevLevel := 0
	for _, count := range []int64{0, 2, 5, 5, 8, 10, 25} {
		views := calc.ComputeProgress(entity.UserCounters{"recyclingActions": count}, nil, catalog)
		assert.GreaterOrEqual(t, views[0].CurrentLevel, prevLevel)
		prevLevel = views[0].CurrentLevel
	}
}

func TestComputeProgressDeterministic(t *testing.T) {
	calc := NewCalculator(nil)
	counters := entity.UserCounters{"recyclingActions": 7}
	catalog := []entity.BadgeTemplate{recyclingTemplate()}

	first := calc.ComputeProgress(counters, nil, catalog)
	second := calc.ComputeProgress(counters, nil, catalog)

	assert.Equal(t, first, second)
}

func TestComputeProgressAggregateCounter(t *testing.T) {
	calc := NewCalculator(nil)
	tpl := entity.BadgeTemplate{
		ID:             "eco-all-rounder",
		Name:           "Eco All-Rounder",
		Category:       "general",
		CounterToCheck: entity.CounterAllCategories,
		Levels: []entity.BadgeLevel{
			{Level: 1, RequiredCount: 10},
		},
	}

	counters := entity.UserCounters{
		"recyclingActions":        6,
		"waterActions":            5,
		entity.CounterTotalActions: 11, // must not double into the aggregate
	}

	views := calc.ComputeProgress(counters, nil, []entity.BadgeTemplate{tpl})

	assert.Equal(t, int64(11), views[0].CurrentCount)
	assert.Equal(t, 1, views[0].CurrentLevel)
}

func TestComputeProgressCustomAggregate(t *testing.T) {
	calc := NewCalculator(func(entity.UserCounters) int64 { return 42 })
	tpl := entity.BadgeTemplate{
		ID:             "custom",
		CounterToCheck: entity.CounterAllCategories,
		Levels:         []entity.BadgeLevel{{Level: 1, RequiredCount: 40}},
	}

	views := calc.ComputeProgress(entity.UserCounters{}, nil, []entity.BadgeTemplate{tpl})

	assert.Equal(t, int64(42), views[0].CurrentCount)
	assert.Equal(t, 1, views[0].CurrentLevel)
}

func TestComputeProgressSkipsTemplateWithoutLevels(t *testing.T) {
	calc := NewCalculator(nil)
	catalog := []entity.BadgeTemplate{
		{ID: "broken", CounterToCheck: "recyclingActions"},
		recyclingTemplate(),
	}

	views := calc.ComputeProgress(entity.UserCounters{"recyclingActions": 7}, nil, catalog)

	if assert.Len(t, views, 1) {
		assert.Equal(t, "recycling-hero", views[0].ID)
	}
}

func TestComputeProgressCarriesEarnedAt(t *testing.T) {
	calc := NewCalculator(nil)
	earnedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earned := entity.EarnedBadges{"recycling-hero": {Level: 1, EarnedAt: earnedAt}}

	views := calc.ComputeProgress(entity.UserCounters{"recyclingActions": 7}, earned, []entity.BadgeTemplate{recyclingTemplate()})

	if assert.NotNil(t, views[0].EarnedAt) {
		assert.Equal(t, earnedAt, *views[0].EarnedAt)
	}
}
