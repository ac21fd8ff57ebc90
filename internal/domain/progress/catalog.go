package progress

import (
	"fmt"
	"sort"

	"ecotrack/internal/domain/entity"
)

// CatalogProblem reports a malformed badge template found at catalog load.
// The offending template is excluded from computation, never propagated as
// a failure to callers of the engine.
type CatalogProblem struct {
	TemplateID string
	Reason     string
}

func (p CatalogProblem) Error() string {
	return fmt.Sprintf("badge template %q: %s", p.TemplateID, p.Reason)
}

// ValidateCatalog normalizes and validates badge templates at load time so
// the per-computation hot path stays branch-free. Levels are sorted
// ascending; templates with no levels, non-contiguous level numbers,
// zero-or-negative thresholds or non-increasing thresholds are dropped and
// reported. Input templates are not mutated.
func ValidateCatalog(templates []entity.BadgeTemplate) ([]entity.BadgeTemplate, []CatalogProblem) {
	valid := make([]entity.BadgeTemplate, 0, len(templates))
	var problems []CatalogProblem

	for _, tpl := range templates {
		if problem := validateTemplate(&tpl); problem != "" {
			problems = append(problems, CatalogProblem{TemplateID: tpl.ID, Reason: problem})
			continue
		}

		levels := make([]entity.BadgeLevel, len(tpl.Levels))
		copy(levels, tpl.Levels)
		sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
		tpl.Levels = levels

		valid = append(valid, tpl)
	}

	return valid, problems
}

func validateTemplate(tpl *entity.BadgeTemplate) string {
	if len(tpl.Levels) == 0 {
		return "no levels defined"
	}
	if tpl.CounterToCheck == "" {
		return "counterToCheck is empty"
	}

	seen := make(map[int]bool, len(tpl.Levels))
	byLevel := make(map[int]int64, len(tpl.Levels))
	for _, lv := range tpl.Levels {
		if lv.Level < 1 || lv.Level > len(tpl.Levels) {
			return fmt.Sprintf("level %d outside contiguous range 1..%d", lv.Level, len(tpl.Levels))
		}
		if seen[lv.Level] {
			return fmt.Sprintf("duplicate level %d", lv.Level)
		}
		seen[lv.Level] = true

		if lv.RequiredCount < 1 {
			return fmt.Sprintf("level %d has requiredCount %d, must be at least 1", lv.Level, lv.RequiredCount)
		}
		byLevel[lv.Level] = lv.RequiredCount
	}

	for level := 2; level <= len(tpl.Levels); level++ {
		if byLevel[level] <= byLevel[level-1] {
			return fmt.Sprintf("requiredCount not strictly increasing at level %d", level)
		}
	}

	return ""
}
