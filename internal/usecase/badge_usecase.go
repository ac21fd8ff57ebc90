package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/progress"
	"ecotrack/internal/domain/repository"
	"ecotrack/pkg/errors"
)

type BadgeUseCase struct {
	badgeRepo  repository.BadgeRepository
	userRepo   repository.UserRepository
	catalog    *CatalogCache
	calculator *progress.Calculator
}

func NewBadgeUseCase(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository, catalog *CatalogCache) *BadgeUseCase {
	return &BadgeUseCase{
		badgeRepo:  badgeRepo,
		userRepo:   userRepo,
		catalog:    catalog,
		calculator: progress.NewCalculator(nil),
	}
}

type BadgeLevelInput struct {
	Level         int
	RequiredCount int64
	Description   string
	Icon          string
	Image         string
}

type BadgeTemplateInput struct {
	Name           string
	Category       string
	Description    string
	CounterToCheck string
	Image          string
	Levels         []BadgeLevelInput
}

func (uc *BadgeUseCase) GetCatalog(ctx context.Context) ([]entity.BadgeTemplate, error) {
	return uc.catalog.Get(ctx)
}

// GetProgress computes the caller's standing on every catalog badge,
// optionally narrowed by filter ("all", "earned", "inProgress").
func (uc *BadgeUseCase) GetProgress(ctx context.Context, userID string, filter string) ([]entity.BadgeProgress, error) {
	views, _, err := uc.computeViews(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progress.Filter(views, progress.FilterMode(filter)), nil
}

func (uc *BadgeUseCase) GetStats(ctx context.Context, userID string) (entity.BadgeStats, error) {
	views, _, err := uc.computeViews(ctx, userID)
	if err != nil {
		return entity.BadgeStats{}, err
	}
	return progress.Stats(views), nil
}

// GetRecentBadges returns up to limit earned badges, most recent first,
// for the profile strip.
func (uc *BadgeUseCase) GetRecentBadges(ctx context.Context, userID string, limit int) ([]entity.BadgeProgress, error) {
	views, earned, err := uc.computeViews(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progress.RecentForProfile(views, earned, limit), nil
}

func (uc *BadgeUseCase) computeViews(ctx context.Context, userID string) ([]entity.BadgeProgress, entity.EarnedBadges, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, errors.NotFound("User", err)
	}

	catalog, err := uc.catalog.Get(ctx)
	if err != nil {
		return nil, nil, errors.Internal("Failed to load badge catalog", err)
	}

	views := uc.calculator.ComputeProgress(user.Counters, user.EarnedBadges, catalog)
	return views, user.EarnedBadges, nil
}

func (uc *BadgeUseCase) CreateBadgeTemplate(ctx context.Context, input BadgeTemplateInput) (*entity.BadgeTemplate, error) {
	now := time.Now()
	template := entity.BadgeTemplate{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Category:       input.Category,
		Description:    input.Description,
		CounterToCheck: input.CounterToCheck,
		Image:          input.Image,
		Levels:         levelsFromInput(input.Levels),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	valid, problems := progress.ValidateCatalog([]entity.BadgeTemplate{template})
	if len(problems) > 0 {
		return nil, errors.BadRequest(problems[0].Error(), nil)
	}
	template = valid[0]

	if err := uc.badgeRepo.Create(ctx, &template); err != nil {
		return nil, errors.Internal("Failed to create badge template", err)
	}

	uc.catalog.Invalidate()
	return &template, nil
}

func (uc *BadgeUseCase) UpdateBadgeTemplate(ctx context.Context, id string, input BadgeTemplateInput) (*entity.BadgeTemplate, error) {
	existing, err := uc.badgeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Badge template", err)
	}

	existing.Name = input.Name
	existing.Category = input.Category
	existing.Description = input.Description
	existing.CounterToCheck = input.CounterToCheck
	existing.Image = input.Image
	existing.Levels = levelsFromInput(input.Levels)
	existing.UpdatedAt = time.Now()

	valid, problems := progress.ValidateCatalog([]entity.BadgeTemplate{*existing})
	if len(problems) > 0 {
		return nil, errors.BadRequest(problems[0].Error(), nil)
	}
	*existing = valid[0]

	if err := uc.badgeRepo.Update(ctx, existing); err != nil {
		return nil, errors.Internal("Failed to update badge template", err)
	}

	uc.catalog.Invalidate()
	return existing, nil
}

func (uc *BadgeUseCase) DeleteBadgeTemplate(ctx context.Context, id string) error {
	if _, err := uc.badgeRepo.GetByID(ctx, id); err != nil {
		return errors.NotFound("Badge template", err)
	}

	if err := uc.badgeRepo.Delete(ctx, id); err != nil {
		return errors.Internal("Failed to delete badge template", err)
	}

	uc.catalog.Invalidate()
	return nil
}

func levelsFromInput(inputs []BadgeLevelInput) []entity.BadgeLevel {
	levels := make([]entity.BadgeLevel, len(inputs))
	for i, in := range inputs {
		levels[i] = entity.BadgeLevel{
			Level:         in.Level,
			RequiredCount: in.RequiredCount,
			Description:   in.Description,
			Icon:          in.Icon,
			Image:         in.Image,
		}
	}
	return levels
}
