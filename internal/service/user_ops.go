package service

import (
	"context"

	"go.uber.org/zap"

	"staymarket/internal/domain"
)

type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// CreateUser 注册新用户。邮箱全局唯一；is_admin 只有管理员能指定。
func (f *Facade) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error) {
	if in.IsAdmin && !actor.IsAdmin {
		return nil, domain.NewAuthorizationError("admin privilege required to grant admin flag")
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	existing, err := f.repos.Users.FindByAttribute(ctx, "email", in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("email already registered")
	}
	hash, err := f.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := domain.NewUser(in.FirstName, in.LastName, in.Email, hash, in.IsAdmin)
	if err != nil {
		return nil, err
	}
	if err := f.repos.Users.Add(ctx, u); err != nil {
		return nil, err
	}
	f.log.Info("user created", zap.String("user_id", u.ID))
	return u, nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := f.repos.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return u, nil
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := f.repos.Users.FindByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError("user", email)
	}
	return u, nil
}

func (f *Facade) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return f.repos.Users.GetAll(ctx)
}

// UpdateUser 本人或管理员可改；非管理员不得动 email / password / is_admin。
// 密码单独处理：先验明文强度，再散列入库。
func (f *Facade) UpdateUser(ctx context.Context, actor Actor, id string, fields map[string]any) (*domain.User, error) {
	target, err := f.repos.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	if !actor.CanActAs(id) {
		return nil, domain.NewAuthorizationError("cannot modify another user")
	}
	if !actor.IsAdmin {
		for _, k := range []string{"email", "password", "is_admin"} {
			if _, ok := fields[k]; ok {
				return nil, domain.NewValidationError(k, "policy", "field requires admin privilege")
			}
		}
	}

	rest := make(map[string]any, len(fields))
	for k, v := range fields {
		rest[k] = v
	}

	var newHash string
	if raw, ok := rest["password"]; ok {
		delete(rest, "password")
		plain, ok := raw.(string)
		if !ok {
			return nil, domain.NewValidationError("password", "format", "must be a string")
		}
		if err := domain.ValidatePassword(plain); err != nil {
			return nil, err
		}
		if newHash, err = f.hasher.Hash(plain); err != nil {
			return nil, err
		}
	}

	// 换邮箱要先查重：内存后端靠这里，关系后端还有唯一索引兜底
	if raw, ok := rest["email"]; ok {
		if email, ok := raw.(string); ok {
			other, err := f.repos.Users.FindByAttribute(ctx, "email", email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, domain.NewConflictError("email already registered")
			}
		}
	}

	u, err := f.repos.Users.Update(ctx, id, rest)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	if newHash != "" {
		u.PasswordHash = newHash
		u.Touch()
		if err := f.repos.Users.Save(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// DeleteUser 本人或管理员。连带清掉其评论与名下房源（房源再级联各自的评论）。
func (f *Facade) DeleteUser(ctx context.Context, actor Actor, id string) error {
	u, err := f.repos.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFoundError("user", id)
	}
	if !actor.CanActAs(id) {
		return domain.NewAuthorizationError("cannot delete another user")
	}

	reviews, err := f.repos.Reviews.FindAllByAttribute(ctx, "user_id", id)
	if err != nil {
		return err
	}
	for _, r := range reviews {
		if err := f.detachAndDeleteReview(ctx, r); err != nil {
			return err
		}
	}
	places, err := f.repos.Places.FindAllByAttribute(ctx, "owner_id", id)
	if err != nil {
		return err
	}
	admin := Actor{ID: actor.ID, IsAdmin: true} // 级联内部删除不再重复授权
	for _, p := range places {
		if err := f.DeletePlace(ctx, admin, p.ID); err != nil {
			return err
		}
	}

	if _, err := f.repos.Users.Delete(ctx, id); err != nil {
		return err
	}
	f.log.Info("user deleted", zap.String("user_id", id))
	return nil
}

// Authenticate 登录校验：邮箱定位用户，比对 bcrypt 散列。
// 不存在与密码错误返回同一个错误，避免枚举邮箱。
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := f.repos.Users.FindByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if u == nil || !f.hasher.Verify(password, u.PasswordHash) {
		return nil, domain.NewAuthorizationError("invalid email or password")
	}
	return u, nil
}
