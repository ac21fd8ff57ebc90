package entity

import (
	"time"
)

// CounterAllCategories is the sentinel CounterToCheck value for badges that
// track the sum of every category counter instead of a single one.
const CounterAllCategories = "allCategories"

// CounterTotalActions is maintained by the approval workflow alongside the
// per-category counters and is excluded from category aggregation.
const CounterTotalActions = "totalActions"

type BadgeLevel struct {
	Level         int    `firestore:"level" json:"level"`
	RequiredCount int64  `firestore:"requiredCount" json:"requiredCount"`
	Description   string `firestore:"description" json:"description"`
	Icon          string `firestore:"icon,omitempty" json:"icon,omitempty"`
	Image         string `firestore:"image,omitempty" json:"image,omitempty"`
}

type BadgeTemplate struct {
	ID             string       `firestore:"id" json:"id"`
	Name           string       `firestore:"name" json:"name"`
	Category       string       `firestore:"category" json:"category"`
	Description    string       `firestore:"description" json:"description"`
	CounterToCheck string       `firestore:"counterToCheck" json:"counterToCheck"`
	Image          string       `firestore:"image,omitempty" json:"image,omitempty"`
	Levels         []BadgeLevel `firestore:"levels" json:"levels"`
	IsActive       bool         `firestore:"isActive" json:"isActive"`
	CreatedAt      time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

// MaxLevel returns the highest defined level, 0 for an empty template.
func (t *BadgeTemplate) MaxLevel() int {
	return len(t.Levels)
}

// UserCounters maps counter names to lifetime activity counts. A missing
// counter reads as zero; the progress engine never mutates this map.
type UserCounters map[string]int64

// Get returns the counter value clamped to be non-negative.
func (c UserCounters) Get(name string) int64 {
	v := c[name]
	if v < 0 {
		return 0
	}
	return v
}

// EarnedBadge is the persisted high-water mark for a single badge.
type EarnedBadge struct {
	Level    int       `firestore:"level" json:"level"`
	EarnedAt time.Time `firestore:"earnedAt" json:"earnedAt"`
}

// EarnedBadges maps badge template ids to the highest level ever confirmed
// earned. Absence of a key means the badge is still locked (level 0).
// The stored level never decreases across writes.
type EarnedBadges map[string]EarnedBadge

// Level returns the stored level for a badge id, 0 when absent.
func (e EarnedBadges) Level(badgeID string) int {
	return e[badgeID].Level
}

// BadgeProgress is the computed, non-persisted standing of one user on one
// badge. Recomputed on demand from counters and the catalog.
type BadgeProgress struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	CurrentLevel     int         `json:"currentLevel"`
	CurrentLevelData *BadgeLevel `json:"currentLevelData"`
	NextLevelData    *BadgeLevel `json:"nextLevelData"`
	CurrentCount     int64       `json:"currentCount"`
	IsEarned         bool        `json:"isEarned"`
	Progress         float64     `json:"progress"`
	ProgressText     string      `json:"progressText"`
	BadgeImage       string      `json:"badgeImage,omitempty"`
	EarnedAt         *time.Time  `json:"earnedAt,omitempty"`
}

// LevelUp records a badge crossing from one stored level to a higher one.
type LevelUp struct {
	BadgeID   string `json:"badgeId"`
	BadgeName string `json:"badgeName,omitempty"`
	FromLevel int    `json:"fromLevel"`
	ToLevel   int    `json:"toLevel"`
}

type BadgeStats struct {
	Earned     int `json:"earned"`
	InProgress int `json:"inProgress"`
	Total      int `json:"total"`
}
