package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecotrack/internal/domain/entity"
)

func TestValidateCatalogAcceptsWellFormed(t *testing.T) {
	valid, problems := ValidateCatalog([]entity.BadgeTemplate{recyclingTemplate()})

	assert.Empty(t, problems)
	assert.Len(t, valid, 1)
}

func TestValidateCatalogSortsLevels(t *testing.T) {
	tpl := entity.BadgeTemplate{
		ID:             "unordered",
		CounterToCheck: "waterActions",
		Levels: []entity.BadgeLevel{
			{Level: 3, RequiredCount: 30},
			{Level: 1, RequiredCount: 5},
			{Level: 2, RequiredCount: 15},
		},
	}

	valid, problems := ValidateCatalog([]entity.BadgeTemplate{tpl})

	assert.Empty(t, problems)
	if assert.Len(t, valid, 1) {
		assert.Equal(t, 1, valid[0].Levels[0].Level)
		assert.Equal(t, 2, valid[0].Levels[1].Level)
		assert.Equal(t, 3, valid[0].Levels[2].Level)
	}
	// Original slice untouched.
	assert.Equal(t, 3, tpl.Levels[0].Level)
}

func TestValidateCatalogRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		tpl  entity.BadgeTemplate
	}{
		{
			name: "no levels",
			tpl:  entity.BadgeTemplate{ID: "empty", CounterToCheck: "waterActions"},
		},
		{
			name: "missing counter",
			tpl: entity.BadgeTemplate{ID: "no-counter", Levels: []entity.BadgeLevel{
				{Level: 1, RequiredCount: 5},
			}},
		},
		{
			name: "zero threshold",
			tpl: entity.BadgeTemplate{ID: "free-level", CounterToCheck: "waterActions", Levels: []entity.BadgeLevel{
				{Level: 1, RequiredCount: 0},
			}},
		},
		{
			name: "non-increasing thresholds",
			tpl: entity.BadgeTemplate{ID: "flat", CounterToCheck: "waterActions", Levels: []entity.BadgeLevel{
				{Level: 1, RequiredCount: 10},
				{Level: 2, RequiredCount: 10},
			}},
		},
		{
			name: "gap in levels",
			tpl: entity.BadgeTemplate{ID: "gapped", CounterToCheck: "waterActions", Levels: []entity.BadgeLevel{
				{Level: 1, RequiredCount: 5},
				{Level: 3, RequiredCount: 15},
			}},
		},
		{
			name: "duplicate level",
			tpl: entity.BadgeTemplate{ID: "dupe", CounterToCheck: "waterActions", Levels: []entity.BadgeLevel{
				{Level: 1, RequiredCount: 5},
				{Level: 1, RequiredCount: 10},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid, problems := ValidateCatalog([]entity.BadgeTemplate{tc.tpl})
			assert.Empty(t, valid)
			if assert.Len(t, problems, 1) {
				assert.Equal(t, tc.tpl.ID, problems[0].TemplateID)
			}
		})
	}
}

func TestValidateCatalogKeepsValidAmongInvalid(t *testing.T) {
	catalog := []entity.BadgeTemplate{
		{ID: "broken", CounterToCheck: "waterActions"},
		recyclingTemplate(),
	}

	valid, problems := ValidateCatalog(catalog)

	assert.Len(t, valid, 1)
	assert.Len(t, problems, 1)
	assert.Equal(t, "recycling-hero", valid[0].ID)
}
