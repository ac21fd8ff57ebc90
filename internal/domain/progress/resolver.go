package progress

import (
	"time"

	"ecotrack/internal/domain/entity"
)

// ResolveLevelUps compares freshly computed views against the persisted
// earned-badges record and returns the record to persist plus the level-ups
// that occurred. Stored levels never decrease. When nothing changed the
// returned record is the previous one, so the caller can compare against it
// and skip the write; re-running with the same inputs yields no level-ups.
func ResolveLevelUps(previous entity.EarnedBadges, views []entity.BadgeProgress, now time.Time) (entity.EarnedBadges, []entity.LevelUp) {
	var levelUps []entity.LevelUp

	updated := previous
	for _, view := range views {
		stored := previous.Level(view.ID)
		if view.CurrentLevel <= stored {
			continue
		}

		if len(levelUps) == 0 {
			updated = make(entity.EarnedBadges, len(previous)+1)
			for id, eb := range previous {
				updated[id] = eb
			}
		}

		updated[view.ID] = entity.EarnedBadge{Level: view.CurrentLevel, EarnedAt: now}
		levelUps = append(levelUps, entity.LevelUp{
			BadgeID:   view.ID,
			BadgeName: view.Name,
			FromLevel: stored,
			ToLevel:   view.CurrentLevel,
		})
	}

	return updated, levelUps
}
