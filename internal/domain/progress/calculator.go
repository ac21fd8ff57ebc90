package progress

import (
	"fmt"

	"ecotrack/internal/domain/entity"
	"ecotrack/pkg/logger"
)

// AllLevelsComplete is the progress text reported once a badge is maxed.
const AllLevelsComplete = "All levels complete"

// AggregateFunc resolves the count for badge templates whose CounterToCheck
// is entity.CounterAllCategories.
type AggregateFunc func(entity.UserCounters) int64

// SumCategoryCounters sums every counter except totalActions. This is the
// default aggregation rule; templates that need a different one get it via
// NewCalculator.
func SumCategoryCounters(counters entity.UserCounters) int64 {
	var sum int64
	for name := range counters {
		if name == entity.CounterTotalActions {
			continue
		}
		sum += counters.Get(name)
	}
	return sum
}

// Calculator turns a user's counter snapshot into per-badge progress views.
// It is pure: no I/O, no mutation of its inputs, same output for same input.
// The catalog passed to ComputeProgress is expected to have gone through
// ValidateCatalog; a template with no levels is still skipped rather than
// crashing the batch.
type Calculator struct {
	aggregate AggregateFunc
}

func NewCalculator(aggregate AggregateFunc) *Calculator {
	if aggregate == nil {
		aggregate = SumCategoryCounters
	}
	return &Calculator{aggregate: aggregate}
}

// ComputeProgress produces one BadgeProgress per catalog template, in
// catalog order. earned is only consulted for the EarnedAt display field;
// levels are always derived from the counters.
func (c *Calculator) ComputeProgress(counters entity.UserCounters, earned entity.EarnedBadges, catalog []entity.BadgeTemplate) []entity.BadgeProgress {
	views := make([]entity.BadgeProgress, 0, len(catalog))
	for i := range catalog {
		tpl := &catalog[i]
		if len(tpl.Levels) == 0 {
			logger.Warn("Skipping badge template %q: no levels defined", tpl.ID)
			continue
		}
		views = append(views, c.computeOne(counters, earned, tpl))
	}
	return views
}

func (c *Calculator) computeOne(counters entity.UserCounters, earned entity.EarnedBadges, tpl *entity.BadgeTemplate) entity.BadgeProgress {
	count := c.counterValue(counters, tpl)

	// Levels are sorted ascending with thresholds strictly increasing, so
	// the highest attained level is the last one whose threshold is met.
	currentLevel := 0
	for _, lv := range tpl.Levels {
		if count < lv.RequiredCount {
			break
		}
		currentLevel = lv.Level
	}

	view := entity.BadgeProgress{
		ID:           tpl.ID,
		Name:         tpl.Name,
		Category:     tpl.Category,
		CurrentLevel: currentLevel,
		CurrentCount: count,
		IsEarned:     currentLevel >= 1,
		BadgeImage:   tpl.Image,
	}

	if currentLevel >= 1 {
		lv := tpl.Levels[currentLevel-1]
		view.CurrentLevelData = &lv
	}

	if currentLevel < len(tpl.Levels) {
		next := tpl.Levels[currentLevel]
		view.NextLevelData = &next

		var floor int64
		if view.CurrentLevelData != nil {
			floor = view.CurrentLevelData.RequiredCount
		}
		view.Progress = clampPercent(float64(count-floor) * 100 / float64(next.RequiredCount-floor))
		view.ProgressText = fmt.Sprintf("%d/%d", count, next.RequiredCount)
	} else {
		view.Progress = 100
		view.ProgressText = AllLevelsComplete
	}

	if eb, ok := earned[tpl.ID]; ok {
		earnedAt := eb.EarnedAt
		view.EarnedAt = &earnedAt
	}

	return view
}

func (c *Calculator) counterValue(counters entity.UserCounters, tpl *entity.BadgeTemplate) int64 {
	if tpl.CounterToCheck == entity.CounterAllCategories {
		if v := c.aggregate(counters); v > 0 {
			return v
		}
		return 0
	}
	return counters.Get(tpl.CounterToCheck)
}

func clampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
