package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/repository"
	"ecotrack/pkg/errors"
)

type firestoreEcoActionRepository struct {
	client *firestore.Client
}

func NewFirestoreEcoActionRepository(client *firestore.Client) repository.EcoActionRepository {
	return &firestoreEcoActionRepository{
		client: client,
	}
}

func (r *firestoreEcoActionRepository) Create(ctx context.Context, action *entity.EcoAction) error {
	_, err := r.client.Collection("ecoActions").Doc(action.ID).Set(ctx, action)
	if err != nil {
		return fmt.Errorf("failed to create eco-action: %w", err)
	}
	return nil
}

func (r *firestoreEcoActionRepository) GetByID(ctx context.Context, id string) (*entity.EcoAction, error) {
	doc, err := r.client.Collection("ecoActions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Eco-action", err)
		}
		return nil, err
	}

	var action entity.EcoAction
	if err := doc.DataTo(&action); err != nil {
		return nil, fmt.Errorf("failed to decode eco-action: %w", err)
	}

	return &action, nil
}

func (r *firestoreEcoActionRepository) UpdateIfPending(ctx context.Context, action *entity.EcoAction) error {
	docRef := r.client.Collection("ecoActions").Doc(action.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var stored entity.EcoAction
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("failed to decode eco-action: %w", err)
		}

		if stored.Status != entity.EcoActionStatusPending {
			return errors.Conflict("Eco-action has already been reviewed")
		}

		return tx.Set(docRef, action)
	})

	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		switch status.Code(err) {
		case codes.NotFound:
			return errors.NotFound("Eco-action", err)
		case codes.Aborted:
			return errors.Conflict("Eco-action has already been reviewed")
		}
		return fmt.Errorf("failed to update eco-action: %w", err)
	}

	return nil
}

func (r *firestoreEcoActionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.EcoAction, int64, error) {
	query := r.client.Collection("ecoActions").Where("userId", "==", userID).OrderBy("submittedAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreEcoActionRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.EcoAction, int64, error) {
	query := r.client.Collection("ecoActions").Where("status", "==", status).OrderBy("submittedAt", firestore.Asc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreEcoActionRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.EcoAction, int64, error) {
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

	var actions []*entity.EcoAction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate eco-actions: %w", err)
		}

		var action entity.EcoAction
		if err := doc.DataTo(&action); err != nil {
			return nil, 0, fmt.Errorf("failed to decode eco-action: %w", err)
		}
		actions = append(actions, &action)
	}

	return actions, total, nil
}
