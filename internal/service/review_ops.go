package service

import (
	"context"

	"go.uber.org/zap"

	"staymarket/internal/domain"
)

type CreateReviewInput struct {
	Text    string
	Rating  int
	PlaceID string
	UserID  string
}

// CreateReview 跨实体检查最多的一条路径：
//   - 房源、作者都得存在（NotFound）；
//   - 房主不能评自己的房源，同一作者同一房源只许一条，管理员豁免这两条；
//   - 评论落库后挂接到房源；挂接持久化失败则删掉刚插的评论，
//     保证不会留下"只有评论没有挂接"的半成品。
func (f *Facade) CreateReview(ctx context.Context, actor Actor, in CreateReviewInput) (*domain.Review, error) {
	authorID := in.UserID
	if authorID == "" {
		authorID = actor.ID
	}
	if !actor.CanActAs(authorID) {
		return nil, domain.NewAuthorizationError("cannot create a review as another user")
	}

	place, err := f.repos.Places.Get(ctx, in.PlaceID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.NewNotFoundError("place", in.PlaceID)
	}
	author, err := f.repos.Users.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.NewNotFoundError("user", authorID)
	}

	if !actor.IsAdmin {
		if place.OwnerID == authorID {
			return nil, domain.NewValidationError("user_id", "policy", "you cannot review your own place")
		}
		existing, err := f.repos.Reviews.FindAllByAttribute(ctx, "place_id", place.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range existing {
			if r.UserID == authorID {
				return nil, domain.NewValidationError("user_id", "policy", "you have already reviewed this place")
			}
		}
	}

	review, err := domain.NewReview(in.Text, in.Rating, place.ID, authorID)
	if err != nil {
		return nil, err
	}
	if err := f.repos.Reviews.Add(ctx, review); err != nil {
		return nil, err
	}
	if err := place.AddReview(review); err != nil {
		_, _ = f.repos.Reviews.Delete(ctx, review.ID)
		return nil, err
	}
	if err := f.repos.Places.Save(ctx, place); err != nil {
		// 补偿：撤回刚插入的评论，别留半截
		_, _ = f.repos.Reviews.Delete(ctx, review.ID)
		return nil, err
	}
	f.log.Info("review created",
		zap.String("review_id", review.ID),
		zap.String("place_id", place.ID),
		zap.String("user_id", authorID),
	)
	return review, nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	r, err := f.repos.Reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFoundError("review", id)
	}
	return r, nil
}

func (f *Facade) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	return f.repos.Reviews.GetAll(ctx)
}

// UpdateReview 作者或管理员；只有 text / rating 可改
func (f *Facade) UpdateReview(ctx context.Context, actor Actor, id string, fields map[string]any) (*domain.Review, error) {
	r, err := f.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActAs(r.UserID) {
		return nil, domain.NewAuthorizationError("only the author or an admin may modify this review")
	}
	updated, err := f.repos.Reviews.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NewNotFoundError("review", id)
	}
	return updated, nil
}

// DeleteReview 作者或管理员
func (f *Facade) DeleteReview(ctx context.Context, actor Actor, id string) error {
	r, err := f.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActAs(r.UserID) {
		return domain.NewAuthorizationError("only the author or an admin may delete this review")
	}
	if err := f.detachAndDeleteReview(ctx, r); err != nil {
		return err
	}
	f.log.Info("review deleted", zap.String("review_id", id))
	return nil
}

// detachAndDeleteReview 先删记录，再把房源上的挂接摘掉
func (f *Facade) detachAndDeleteReview(ctx context.Context, r *domain.Review) error {
	if _, err := f.repos.Reviews.Delete(ctx, r.ID); err != nil {
		return err
	}
	place, err := f.repos.Places.Get(ctx, r.PlaceID)
	if err != nil {
		return err
	}
	if place != nil && place.RemoveReview(r.ID) {
		if err := f.repos.Places.Save(ctx, place); err != nil {
			return err
		}
	}
	return nil
}
