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

type firestoreBadgeRepository struct {
	client *firestore.Client
}

func NewFirestoreBadgeRepository(client *firestore.Client) repository.BadgeRepository {
	return &firestoreBadgeRepository{
		client: client,
	}
}

func (r *firestoreBadgeRepository) Create(ctx context.Context, template *entity.BadgeTemplate) error {
	_, err := r.client.Collection("badgeTemplates").Doc(template.ID).Set(ctx, template)
	if err != nil {
		return fmt.Errorf("failed to create badge template: %w", err)
	}
	return nil
}

func (r *firestoreBadgeRepository) GetByID(ctx context.Context, id string) (*entity.BadgeTemplate, error) {
	doc, err := r.client.Collection("badgeTemplates").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Badge template", err)
		}
		return nil, err
	}

	var template entity.BadgeTemplate
	if err := doc.DataTo(&template); err != nil {
		return nil, fmt.Errorf("failed to decode badge template: %w", err)
	}

	return &template, nil
}

func (r *firestoreBadgeRepository) Update(ctx context.Context, template *entity.BadgeTemplate) error {
	_, err := r.client.Collection("badgeTemplates").Doc(template.ID).Set(ctx, template)
	if err != nil {
		return fmt.Errorf("failed to update badge template: %w", err)
	}
	return nil
}

func (r *firestoreBadgeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("badgeTemplates").Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete badge template: %w", err)
	}
	return nil
}

func (r *firestoreBadgeRepository) List(ctx context.Context) ([]entity.BadgeTemplate, error) {
	// Creation order is the catalog order the progress views rely on.
	iter := r.client.Collection("badgeTemplates").OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var templates []entity.BadgeTemplate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate badge templates: %w", err)
		}

		var template entity.BadgeTemplate
		if err := doc.DataTo(&template); err != nil {
			return nil, fmt.Errorf("failed to decode badge template: %w", err)
		}
		templates = append(templates, template)
	}

	return templates, nil
}
