package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 密码特殊字符集合（注册与改密共用）
const passwordSymbols = "!@#$%^&*(){}[]\"'<>,.?|`~;:"

// User 房源归属与评论作者的主体。
// PasswordHash 只存散列，明文规则见 ValidatePassword。
type User struct {
	Base
	FirstName    string `gorm:"size:50;not null" json:"first_name"`
	LastName     string `gorm:"size:50;not null" json:"last_name"`
	Email        string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`

	Places  []Place  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews []Review `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

// NewUser 构造并校验；passwordHash 由调用方（facade）散列后传入，
// 明文先过 ValidatePassword。
func NewUser(firstName, lastName, email, passwordHash string, isAdmin bool) (*User, error) {
	u := &User{Base: newBase(), IsAdmin: isAdmin}
	if err := u.setFirstName(firstName); err != nil {
		return nil, err
	}
	if err := u.setLastName(lastName); err != nil {
		return nil, err
	}
	if err := u.setEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, NewValidationError("password", "required", "password is required")
	}
	u.PasswordHash = passwordHash
	return u, nil
}

func (u *User) setFirstName(v string) error {
	if v == "" {
		return NewValidationError("first_name", "required", "first name is required")
	}
	// 长度按字符数算，不按字节
	if utf8.RuneCountInString(v) > 50 {
		return NewValidationError("first_name", "max-length", "first name must not exceed 50 characters")
	}
	u.FirstName = v
	return nil
}

func (u *User) setLastName(v string) error {
	if v == "" {
		return NewValidationError("last_name", "required", "last name is required")
	}
	if utf8.RuneCountInString(v) > 50 {
		return NewValidationError("last_name", "max-length", "last name must not exceed 50 characters")
	}
	u.LastName = v
	return nil
}

func (u *User) setEmail(v string) error {
	if v == "" {
		return NewValidationError("email", "required", "email is required")
	}
	at := strings.IndexByte(v, '@')
	if at <= 0 || at == len(v)-1 || !strings.Contains(v[at+1:], ".") {
		return NewValidationError("email", "format", "email address is not valid")
	}
	u.Email = v
	return nil
}

// ValidatePassword 明文密码强度规则：至少 8 位，
// 字母、数字、特殊字符各至少一个。只在设置新密码时调用。
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return NewValidationError("password", "format", "password must be at least 8 characters")
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, c := range plain {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, c):
			hasSymbol = true
		}
	}
	if !hasLetter {
		return NewValidationError("password", "format", "password is missing a letter")
	}
	if !hasDigit {
		return NewValidationError("password", "format", "password is missing a digit")
	}
	if !hasSymbol {
		return NewValidationError("password", "format", "password is missing a special character")
	}
	return nil
}

// ApplyUpdate 按白名单逐字段套用构造时的同一套校验。
// 先改副本、全部通过后一次性落回，失败时不留半成品。
// 未知键直接拒绝（严格策略）；密码不走这里（需散列，由 facade 处理）。
func (u *User) ApplyUpdate(fields map[string]any) error {
	next := *u
	for key, raw := range fields {
		switch key {
		case "first_name":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			if err := next.setFirstName(v); err != nil {
				return err
			}
		case "last_name":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			if err := next.setLastName(v); err != nil {
				return err
			}
		case "email":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			if err := next.setEmail(v); err != nil {
				return err
			}
		case "is_admin":
			v, err := coerceBool(key, raw)
			if err != nil {
				return err
			}
			next.IsAdmin = v
		default:
			return NewValidationError(key, "policy", "unknown field")
		}
	}
	next.Touch()
	*u = next
	return nil
}
