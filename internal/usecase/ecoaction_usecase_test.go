package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ecotrack/internal/domain/entity"
	"ecotrack/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*entity.User
	// conflicts makes the next n UpdateProgress calls fail with a
	// CONFLICT error before applying anything.
	conflicts int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindByField(_ context.Context, _, _ string, _, _ int) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) UpdateProgress(_ context.Context, userID string, apply func(*entity.UserProgress) (bool, error)) error {
	if r.conflicts > 0 {
		r.conflicts--
		return errors.Conflict("Concurrent progress update")
	}

	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}

	snapshot := entity.UserProgress{
		Counters:     user.Counters,
		EarnedBadges: user.EarnedBadges,
	}
	write, err := apply(&snapshot)
	if err != nil {
		return err
	}
	if write {
		user.Counters = snapshot.Counters
		user.EarnedBadges = snapshot.EarnedBadges
	}
	return nil
}

type fakeBadgeRepo struct {
	templates []entity.BadgeTemplate
	listCalls int
}

func (r *fakeBadgeRepo) Create(_ context.Context, template *entity.BadgeTemplate) error {
	r.templates = append(r.templates, *template)
	return nil
}

func (r *fakeBadgeRepo) GetByID(_ context.Context, id string) (*entity.BadgeTemplate, error) {
	for i := range r.templates {
		if r.templates[i].ID == id {
			tpl := r.templates[i]
			return &tpl, nil
		}
	}
	return nil, errors.NotFound("Badge template", nil)
}

func (r *fakeBadgeRepo) Update(_ context.Context, template *entity.BadgeTemplate) error {
	for i := range r.templates {
		if r.templates[i].ID == template.ID {
			r.templates[i] = *template
			return nil
		}
	}
	return errors.NotFound("Badge template", nil)
}

func (r *fakeBadgeRepo) Delete(_ context.Context, id string) error {
	for i := range r.templates {
		if r.templates[i].ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Badge template", nil)
}

func (r *fakeBadgeRepo) List(_ context.Context) ([]entity.BadgeTemplate, error) {
	r.listCalls++
	out := make([]entity.BadgeTemplate, len(r.templates))
	copy(out, r.templates)
	return out, nil
}

type fakeEcoActionRepo struct {
	actions map[string]*entity.EcoAction
	// staleReads makes the next n GetByID calls report the action as
	// still pending, simulating a reviewer racing on an old snapshot.
	staleReads int
}

func newFakeEcoActionRepo() *fakeEcoActionRepo {
	return &fakeEcoActionRepo{actions: make(map[string]*entity.EcoAction)}
}

func (r *fakeEcoActionRepo) Create(_ context.Context, action *entity.EcoAction) error {
	copied := *action
	r.actions[action.ID] = &copied
	return nil
}

func (r *fakeEcoActionRepo) GetByID(_ context.Context, id string) (*entity.EcoAction, error) {
	action, ok := r.actions[id]
	if !ok {
		return nil, errors.NotFound("Eco-action", nil)
	}
	copied := *action
	if r.staleReads > 0 {
		r.staleReads--
		copied.Status = entity.EcoActionStatusPending
		copied.ReviewedBy = ""
	}
	return &copied, nil
}

func (r *fakeEcoActionRepo) UpdateIfPending(_ context.Context, action *entity.EcoAction) error {
	stored, ok := r.actions[action.ID]
	if !ok {
		return errors.NotFound("Eco-action", nil)
	}
	if stored.Status != entity.EcoActionStatusPending {
		return errors.Conflict("Eco-action has already been reviewed")
	}
	copied := *action
	r.actions[action.ID] = &copied
	return nil
}

func (r *fakeEcoActionRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.EcoAction, int64, error) {
	var out []*entity.EcoAction
	for _, a := range r.actions {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEcoActionRepo) ListByStatus(_ context.Context, status string, _, _ int) ([]*entity.EcoAction, int64, error) {
	var out []*entity.EcoAction
	for _, a := range r.actions {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

type fakeNotifier struct {
	userID   string
	levelUps []entity.LevelUp
}

func (n *fakeNotifier) NotifyLevelUps(userID string, levelUps []entity.LevelUp) {
	n.userID = userID
	n.levelUps = levelUps
}

func recyclingHeroTemplate() entity.BadgeTemplate {
	return entity.BadgeTemplate{
		ID:             "recycling-hero",
		Name:           "Recycling Hero",
		Category:       "recycling",
		CounterToCheck: "recyclingActions",
		Levels: []entity.BadgeLevel{
			{Level: 1, RequiredCount: 5},
			{Level: 2, RequiredCount: 10},
		},
		IsActive: true,
	}
}

func newStudent(id string, counters entity.UserCounters) *entity.User {
	return &entity.User{
		ID:           id,
		Email:        id + "@school.test",
		Role:         entity.RoleStudent,
		Counters:     counters,
		EarnedBadges: entity.EarnedBadges{},
	}
}

func newEcoActionFixture(conflicts int) (*EcoActionUseCase, *fakeUserRepo, *fakeEcoActionRepo, *fakeNotifier) {
	userRepo := newFakeUserRepo(newStudent("student-1", entity.UserCounters{"recyclingActions": 4}))
	userRepo.conflicts = conflicts
	badgeRepo := &fakeBadgeRepo{templates: []entity.BadgeTemplate{recyclingHeroTemplate()}}
	actionRepo := newFakeEcoActionRepo()
	notifier := &fakeNotifier{}

	uc := NewEcoActionUseCase(actionRepo, userRepo, NewCatalogCache(badgeRepo, 0), notifier)
	return uc, userRepo, actionRepo, notifier
}

func TestSubmitUnknownCategory(t *testing.T) {
	uc, _, _, _ := newEcoActionFixture(0)

	_, err := uc.Submit(context.Background(), "student-1", SubmitEcoActionInput{Category: "skydiving"})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSubmitCreatesPendingAction(t *testing.T) {
	uc, _, actionRepo, _ := newEcoActionFixture(0)

	action, err := uc.Submit(context.Background(), "student-1", SubmitEcoActionInput{
		Category:    "recycling",
		Description: "Sorted the class paper bin",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.EcoActionStatusPending, action.Status)
	assert.NotEmpty(t, action.ID)

	stored, err := actionRepo.GetByID(context.Background(), action.ID)
	assert.NoError(t, err)
	assert.Equal(t, "student-1", stored.UserID)
}

func TestApproveIncrementsCountersAndLevelsUp(t *testing.T) {
	uc, userRepo, _, notifier := newEcoActionFixture(0)
	ctx := context.Background()

	submitted, err := uc.Submit(ctx, "student-1", SubmitEcoActionInput{Category: "recycling"})
	assert.NoError(t, err)

	approved, levelUps, err := uc.Approve(ctx, "teacher-1", submitted.ID)
	assert.NoError(t, err)

	assert.Equal(t, entity.EcoActionStatusApproved, approved.Status)
	assert.Equal(t, "teacher-1", approved.ReviewedBy)
	assert.False(t, approved.ReviewedAt.IsZero())

	student := userRepo.users["student-1"]
	assert.Equal(t, int64(5), student.Counters["recyclingActions"])
	assert.Equal(t, int64(1), student.Counters[entity.CounterTotalActions])

	if assert.Len(t, levelUps, 1) {
		assert.Equal(t, "recycling-hero", levelUps[0].BadgeID)
		assert.Equal(t, 0, levelUps[0].FromLevel)
		assert.Equal(t, 1, levelUps[0].ToLevel)
	}
	assert.Equal(t, 1, student.EarnedBadges.Level("recycling-hero"))

	assert.Equal(t, "student-1", notifier.userID)
	assert.Len(t, notifier.levelUps, 1)
}

func TestApproveWithoutLevelUp(t *testing.T) {
	uc, userRepo, _, notifier := newEcoActionFixture(0)
	ctx := context.Background()
	userRepo.users["student-1"].Counters = entity.UserCounters{"recyclingActions": 1}

	submitted, err := uc.Submit(ctx, "student-1", SubmitEcoActionInput{Category: "recycling"})
	assert.NoError(t, err)

	_, levelUps, err := uc.Approve(ctx, "teacher-1", submitted.ID)
	assert.NoError(t, err)

	assert.Empty(t, levelUps)
	assert.Empty(t, notifier.userID)
	assert.Empty(t, userRepo.users["student-1"].EarnedBadges)
}

func TestApproveAlreadyReviewed(t *testing.T) {
	uc, _, _, _ := newEcoActionFixture(0)
	ctx := context.Background()

	submitted, err := uc.Submit(ctx, "student-1", SubmitEcoActionInput{Category: "recycling"})
	assert.NoError(t, err)

	_, _, err = uc.Approve(ctx, "teacher-1", submitted.ID)
	assert.NoError(t, err)

	_, _, err = uc.Approve(ctx, "teacher-1", submitted.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestApproveRacingReviewersIncrementOnce(t *testing.T) {
	uc, userRepo, actionRepo, _ := newEcoActionFixture(0)
	ctx := context.Background()

	submitted, err := uc.Submit(ctx, "student-1", SubmitEcoActionInput{Category: "recycling"})
	assert.NoError(t, err)

	_, _, err = uc.Approve(ctx, "teacher-1", submitted.ID)
	assert.NoError(t, err)

	// The second reviewer read the submission before the first one's
	// approval landed; the pending claim must reject them.
	actionRepo.staleReads = 1
	_, _, err = uc.Approve(ctx, "teacher-2", submitted.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	student := userRepo.users["student-1"]
	assert.Equal(t, int64(5), student.Counters["recyclingActions"])
	assert.Equal(t, int64(1), student.Counters[entity.CounterTotalActions])

	stored, err := actionRepo.GetByID(ctx, submitted.ID)
	assert.NoError(t, err)
	assert.Equal(t, "teacher-1", stored.ReviewedBy)
}

func TestApproveRetriesOnConflict(t *testing.T) {
	uc, userRepo, _, _ := newEcoActionFixture(1)
	ctx := context.Background()

	submitted, err := uc.Submit(ctx, "student-1", SubmitEcoActionInput{Category: "recycling"})
	assert.NoError(t, err)

	_, levelUps, err := uc.Approve(ctx, "teacher-1", submitted.ID)

	assert.NoError(t, err)
	assert.Len(t, levelUps, 1)
	assert.Equal(t, int64(5), userRepo.users["student-1"].Counters["recyclingActions"])
}

func TestRejectLeavesCountersUntouched(t *testing.T) {
	uc, userRepo, _, _ := newEcoActionFixture(0)
	ctx := context.Background()

	submitted, err := uc.Submit(ctx, "student-1", SubmitEcoActionInput{Category: "recycling"})
	assert.NoError(t, err)

	rejected, err := uc.Reject(ctx, "teacher-1", submitted.ID, "No photo attached")
	assert.NoError(t, err)

	assert.Equal(t, entity.EcoActionStatusRejected, rejected.Status)
	assert.Equal(t, "No photo attached", rejected.RejectReason)
	assert.Equal(t, int64(4), userRepo.users["student-1"].Counters["recyclingActions"])
	assert.Zero(t, userRepo.users["student-1"].Counters[entity.CounterTotalActions])
}
