package service

import (
	"context"

	"go.uber.org/zap"

	"staymarket/internal/domain"
)

type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
}

// CreatePlace 房主必须存在；设施 ID 解析失败的静默跳过。
// 非管理员只能以自己为房主。
func (f *Facade) CreatePlace(ctx context.Context, actor Actor, in CreatePlaceInput) (*domain.Place, error) {
	ownerID := in.OwnerID
	if ownerID == "" {
		ownerID = actor.ID
	}
	if !actor.CanActAs(ownerID) {
		return nil, domain.NewAuthorizationError("cannot create a place for another user")
	}
	owner, err := f.repos.Users.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.NewValidationError("owner_id", "format", "owner does not exist")
	}

	var amenities []domain.Amenity
	for _, aid := range in.AmenityIDs {
		a, err := f.repos.Amenities.Get(ctx, aid)
		if err != nil {
			return nil, err
		}
		if a == nil {
			continue // 解析不了就跳过
		}
		amenities = append(amenities, *a)
	}

	p, err := domain.NewPlace(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, ownerID, amenities)
	if err != nil {
		return nil, err
	}
	if err := f.repos.Places.Add(ctx, p); err != nil {
		return nil, err
	}
	f.log.Info("place created", zap.String("place_id", p.ID), zap.String("owner_id", ownerID))
	return p, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	p, err := f.repos.Places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("place", id)
	}
	return p, nil
}

func (f *Facade) ListPlaces(ctx context.Context) ([]*domain.Place, error) {
	return f.repos.Places.GetAll(ctx)
}

// UpdatePlace 房主或管理员
func (f *Facade) UpdatePlace(ctx context.Context, actor Actor, id string, fields map[string]any) (*domain.Place, error) {
	p, err := f.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActAs(p.OwnerID) {
		return nil, domain.NewAuthorizationError("only the owner or an admin may modify this place")
	}
	updated, err := f.repos.Places.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NewNotFoundError("place", id)
	}
	return updated, nil
}

// DeletePlace 房主或管理员；该房源的评论级联删除（见 DESIGN.md 的取舍）
func (f *Facade) DeletePlace(ctx context.Context, actor Actor, id string) error {
	p, err := f.GetPlace(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActAs(p.OwnerID) {
		return domain.NewAuthorizationError("only the owner or an admin may delete this place")
	}

	reviews, err := f.repos.Reviews.FindAllByAttribute(ctx, "place_id", id)
	if err != nil {
		return err
	}
	for _, r := range reviews {
		if _, err := f.repos.Reviews.Delete(ctx, r.ID); err != nil {
			return err
		}
	}

	if _, err := f.repos.Places.Delete(ctx, id); err != nil {
		return err
	}
	f.log.Info("place deleted", zap.String("place_id", id), zap.Int("cascaded_reviews", len(reviews)))
	return nil
}

// AddAmenityToPlace 两边都要存在；幂等（重复挂接不报错不重复）
func (f *Facade) AddAmenityToPlace(ctx context.Context, actor Actor, placeID, amenityID string) (*domain.Place, error) {
	p, err := f.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActAs(p.OwnerID) {
		return nil, domain.NewAuthorizationError("only the owner or an admin may modify this place")
	}
	a, err := f.repos.Amenities.Get(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NewNotFoundError("amenity", amenityID)
	}
	p.AddAmenity(a)
	if err := f.repos.Places.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *Facade) RemoveAmenityFromPlace(ctx context.Context, actor Actor, placeID, amenityID string) (*domain.Place, error) {
	p, err := f.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActAs(p.OwnerID) {
		return nil, domain.NewAuthorizationError("only the owner or an admin may modify this place")
	}
	if !p.RemoveAmenity(amenityID) {
		return nil, domain.NewNotFoundError("amenity", amenityID)
	}
	if err := f.repos.Places.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListAmenitiesByPlace 房源的设施集合。
// 挂在房源上的只是成员资格，这里按目录现值逐个解析，
// 否则内存后端会把挂接时的快照一直端出去，和关系后端对不上。
func (f *Facade) ListAmenitiesByPlace(ctx context.Context, placeID string) ([]*domain.Amenity, error) {
	p, err := f.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Amenity, 0, len(p.Amenities))
	for i := range p.Amenities {
		a, err := f.repos.Amenities.Get(ctx, p.Amenities[i].ID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ListReviewsByPlace 房源的评论列表（插入序）。
// 同上，取评论仓储里的现值而不是房源上的挂接副本。
func (f *Facade) ListReviewsByPlace(ctx context.Context, placeID string) ([]*domain.Review, error) {
	if _, err := f.GetPlace(ctx, placeID); err != nil {
		return nil, err
	}
	return f.repos.Reviews.FindAllByAttribute(ctx, "place_id", placeID)
}
