package progress

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ecotrack/internal/domain/entity"
)

func TestResolveLevelUpsFirstEarn(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	views := []entity.BadgeProgress{{ID: "recycling-hero", Name: "Recycling Hero", CurrentLevel: 1, IsEarned: true}}

	updated, levelUps := ResolveLevelUps(entity.EarnedBadges{}, views, now)

	if assert.Len(t, levelUps, 1) {
		assert.Equal(t, "recycling-hero", levelUps[0].BadgeID)
		assert.Equal(t, 0, levelUps[0].FromLevel)
		assert.Equal(t, 1, levelUps[0].ToLevel)
	}
	assert.Equal(t, 1, updated["recycling-hero"].Level)
	assert.Equal(t, now, updated["recycling-hero"].EarnedAt)
}

func TestResolveLevelUpsNoChange(t *testing.T) {
	previous := entity.EarnedBadges{"recycling-hero": {Level: 2, EarnedAt: time.Now()}}
	views := []entity.BadgeProgress{{ID: "recycling-hero", CurrentLevel: 2, IsEarned: true}}

	updated, levelUps := ResolveLevelUps(previous, views, time.Now())

	assert.Empty(t, levelUps)
	// Same map handed back, so the caller can skip the write.
	assert.Equal(t, reflect.ValueOf(previous).Pointer(), reflect.ValueOf(updated).Pointer())
}

func TestResolveLevelUpsNeverLowers(t *testing.T) {
	previous := entity.EarnedBadges{"recycling-hero": {Level: 2, EarnedAt: time.Now()}}
	views := []entity.BadgeProgress{{ID: "recycling-hero", CurrentLevel: 1, IsEarned: true}}

	updated, levelUps := ResolveLevelUps(previous, views, time.Now())

	assert.Empty(t, levelUps)
	assert.Equal(t, 2, updated["recycling-hero"].Level)
}

func TestResolveLevelUpsIdempotent(t *testing.T) {
	now := time.Now()
	views := []entity.BadgeProgress{{ID: "recycling-hero", CurrentLevel: 1, IsEarned: true}}

	updated, first := ResolveLevelUps(entity.EarnedBadges{}, views, now)
	assert.Len(t, first, 1)

	again, second := ResolveLevelUps(updated, views, now.Add(time.Minute))
	assert.Empty(t, second)
	assert.Equal(t, updated, again)
}

func TestResolveLevelUpsDoesNotMutatePrevious(t *testing.T) {
	earnedAt := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	previous := entity.EarnedBadges{"water-saver": {Level: 1, EarnedAt: earnedAt}}
	views := []entity.BadgeProgress{
		{ID: "water-saver", CurrentLevel: 2, IsEarned: true},
		{ID: "recycling-hero", CurrentLevel: 1, IsEarned: true},
	}

	updated, levelUps := ResolveLevelUps(previous, views, time.Now())

	assert.Len(t, levelUps, 2)
	assert.Len(t, updated, 2)
	assert.Equal(t, entity.EarnedBadges{"water-saver": {Level: 1, EarnedAt: earnedAt}}, previous)
}

func TestResolveLevelUpsMultiLevelJump(t *testing.T) {
	views := []entity.BadgeProgress{{ID: "recycling-hero", CurrentLevel: 3, IsEarned: true}}

	updated, levelUps := ResolveLevelUps(entity.EarnedBadges{"recycling-hero": {Level: 1}}, views, time.Now())

	if assert.Len(t, levelUps, 1) {
		assert.Equal(t, 1, levelUps[0].FromLevel)
		assert.Equal(t, 3, levelUps[0].ToLevel)
	}
	assert.Equal(t, 3, updated["recycling-hero"].Level)
}
