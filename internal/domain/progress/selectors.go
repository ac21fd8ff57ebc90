package progress

import (
	"sort"

	"ecotrack/internal/domain/entity"
)

type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterEarned     FilterMode = "earned"
	FilterInProgress FilterMode = "inProgress"
)

// Stats counts earned, in-progress (started but unearned) and total badges.
func Stats(views []entity.BadgeProgress) entity.BadgeStats {
	stats := entity.BadgeStats{Total: len(views)}
	for _, view := range views {
		switch {
		case view.IsEarned:
			stats.Earned++
		case view.CurrentCount > 0:
			stats.InProgress++
		}
	}
	return stats
}

// Filter returns the subsequence of views matching mode, preserving catalog
// order. An unknown mode behaves like FilterAll.
func Filter(views []entity.BadgeProgress, mode FilterMode) []entity.BadgeProgress {
	if mode == FilterAll || mode == "" {
		return views
	}

	filtered := make([]entity.BadgeProgress, 0, len(views))
	for _, view := range views {
		switch mode {
		case FilterEarned:
			if view.IsEarned {
				filtered = append(filtered, view)
			}
		case FilterInProgress:
			if !view.IsEarned && view.CurrentCount > 0 {
				filtered = append(filtered, view)
			}
		default:
			filtered = append(filtered, view)
		}
	}
	return filtered
}

// RecentForProfile returns up to n earned badges ordered by earnedAt
// descending. The sort is stable so badges earned at the same instant keep
// catalog order.
func RecentForProfile(views []entity.BadgeProgress, earned entity.EarnedBadges, n int) []entity.BadgeProgress {
	recent := make([]entity.BadgeProgress, 0, len(views))
	for _, view := range views {
		if view.IsEarned {
			recent = append(recent, view)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return earned[recent[i].ID].EarnedAt.After(earned[recent[j].ID].EarnedAt)
	})

	if n >= 0 && len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
