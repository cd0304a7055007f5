package domain

// Review 评论。归属用外键 ID 存储，不内嵌可变对象，
// 作者/房源详情按需经仓储解析。
type Review struct {
	Base
	Text    string `gorm:"not null" json:"text"`
	Rating  int    `gorm:"not null" json:"rating"`
	PlaceID string `gorm:"size:36;not null;index" json:"place_id"`
	UserID  string `gorm:"size:36;not null;index" json:"user_id"`
}

func (Review) TableName() string { return "reviews" }

// NewReview 构造并校验；place/user 的存在性由 facade 先行确认。
func NewReview(text string, rating int, placeID, userID string) (*Review, error) {
	r := &Review{Base: newBase()}
	if err := r.setText(text); err != nil {
		return nil, err
	}
	if err := r.setRating(rating); err != nil {
		return nil, err
	}
	if placeID == "" {
		return nil, NewValidationError("place_id", "required", "a place id is required")
	}
	if userID == "" {
		return nil, NewValidationError("user_id", "required", "a user id is required")
	}
	r.PlaceID = placeID
	r.UserID = userID
	return r, nil
}

func (r *Review) setText(v string) error {
	if v == "" {
		return NewValidationError("text", "required", "review text is required")
	}
	r.Text = v
	return nil
}

func (r *Review) setRating(v int) error {
	if v < 1 || v > 5 {
		return NewValidationError("rating", "range", "rating must be between 1 and 5")
	}
	r.Rating = v
	return nil
}

// ApplyUpdate 只有 text 和 rating 可改，改副本、全过再落回；归属外键不可变
func (r *Review) ApplyUpdate(fields map[string]any) error {
	next := *r
	for key, raw := range fields {
		switch key {
		case "text":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			if err := next.setText(v); err != nil {
				return err
			}
		case "rating":
			v, err := coerceInt(key, raw)
			if err != nil {
				return err
			}
			if err := next.setRating(v); err != nil {
				return err
			}
		default:
			return NewValidationError(key, "policy", "unknown field")
		}
	}
	next.Touch()
	*r = next
	return nil
}
