package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/repository"
	"ecotrack/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.Counters == nil {
		user.Counters = entity.UserCounters{}
	}
	if user.EarnedBadges == nil {
		user.EarnedBadges = entity.EarnedBadges{}
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	return err
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, err
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection("users").Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"displayName": user.DisplayName,
		"schoolClass": user.SchoolClass,
		"bio":         user.Bio,
		"avatarURL":   user.AvatarURL,
		"role":        user.Role,
		"updatedAt":   time.Now(),
	}

	// Drop empty values so a partial update cannot blank existing fields.
	cleanUpdateData := make(map[string]interface{}, len(updateData))
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	return err
}

func (r *firestoreUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("users").Doc(id).Delete(ctx)
	return err
}

func (r *firestoreUserRepository) FindByField(ctx context.Context, field, value string, limit, offset int) ([]*entity.User, int64, error) {
	query := r.client.Collection("users").Where(field, "==", value)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, 0, err
		}
		users = append(users, &user)
	}

	return users, total, nil
}

// UpdateProgress reads the user's counters and earned badges, applies the
// given mutation and writes the result back, all inside one Firestore
// transaction. Contention surfaces as a CONFLICT error the caller can
// retry from a fresh snapshot.
func (r *firestoreUserRepository) UpdateProgress(ctx context.Context, userID string, apply func(*entity.UserProgress) (bool, error)) error {
	docRef := r.client.Collection("users").Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return err
		}

		snapshot := entity.UserProgress{
			Counters:     user.Counters,
			EarnedBadges: user.EarnedBadges,
		}
		if snapshot.Counters == nil {
			snapshot.Counters = entity.UserCounters{}
		}
		if snapshot.EarnedBadges == nil {
			snapshot.EarnedBadges = entity.EarnedBadges{}
		}

		write, err := apply(&snapshot)
		if err != nil {
			return err
		}
		if !write {
			return nil
		}

		return tx.Set(docRef, map[string]interface{}{
			"counters":     snapshot.Counters,
			"earnedBadges": snapshot.EarnedBadges,
			"updatedAt":    time.Now(),
		}, firestore.MergeAll)
	})

	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return errors.NotFound("User", err)
		case codes.Aborted:
			return errors.Conflict("Concurrent progress update")
		}
		return err
	}

	return nil
}
