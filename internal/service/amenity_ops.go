package service

import (
	"context"

	"go.uber.org/zap"

	"staymarket/internal/domain"
)

type CreateAmenityInput struct {
	Name        string
	Description string
}

// CreateAmenity 设施目录仅管理员可维护
func (f *Facade) CreateAmenity(ctx context.Context, actor Actor, in CreateAmenityInput) (*domain.Amenity, error) {
	if !actor.IsAdmin {
		return nil, domain.NewAuthorizationError("admin privilege required")
	}
	a, err := domain.NewAmenity(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	if err := f.repos.Amenities.Add(ctx, a); err != nil {
		return nil, err
	}
	f.log.Info("amenity created", zap.String("amenity_id", a.ID), zap.String("name", a.Name))
	return a, nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*domain.Amenity, error) {
	a, err := f.repos.Amenities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NewNotFoundError("amenity", id)
	}
	return a, nil
}

func (f *Facade) ListAmenities(ctx context.Context) ([]*domain.Amenity, error) {
	return f.repos.Amenities.GetAll(ctx)
}

func (f *Facade) UpdateAmenity(ctx context.Context, actor Actor, id string, fields map[string]any) (*domain.Amenity, error) {
	if !actor.IsAdmin {
		return nil, domain.NewAuthorizationError("admin privilege required")
	}
	if _, err := f.GetAmenity(ctx, id); err != nil {
		return nil, err
	}
	a, err := f.repos.Amenities.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NewNotFoundError("amenity", id)
	}
	return a, nil
}

// DeleteAmenity 先从引用它的房源摘除，再删目录项
func (f *Facade) DeleteAmenity(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin {
		return domain.NewAuthorizationError("admin privilege required")
	}
	if _, err := f.GetAmenity(ctx, id); err != nil {
		return err
	}
	places, err := f.repos.Places.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range places {
		if p.RemoveAmenity(id) {
			if err := f.repos.Places.Save(ctx, p); err != nil {
				return err
			}
		}
	}
	if _, err := f.repos.Amenities.Delete(ctx, id); err != nil {
		return err
	}
	f.log.Info("amenity deleted", zap.String("amenity_id", id))
	return nil
}
