package domain

import "unicode/utf8"

// Place 房源。Amenities 为多对多（place_amenity 连接表），
// Reviews 为一对多（reviews.place_id 外键）。
// 两个关联集合只允许通过 AddAmenity / RemoveAmenity / AddReview 变更，
// 以保证无重复、无错挂的成员资格。
type Place struct {
	Base
	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Latitude    float64 `gorm:"not null" json:"latitude"`
	Longitude   float64 `gorm:"not null" json:"longitude"`
	OwnerID     string  `gorm:"size:36;not null;index" json:"owner_id"`

	Amenities []Amenity `gorm:"many2many:place_amenity;constraint:OnDelete:CASCADE" json:"amenities"`
	Reviews   []Review  `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"reviews"`
}

func (Place) TableName() string { return "places" }

// NewPlace 构造并校验。amenities 由 facade 预先解析好（无法解析的 ID 已被跳过）。
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string, amenities []Amenity) (*Place, error) {
	p := &Place{Base: newBase(), Description: description}
	if err := p.setTitle(title); err != nil {
		return nil, err
	}
	if err := p.setPrice(price); err != nil {
		return nil, err
	}
	if err := p.setLatitude(latitude); err != nil {
		return nil, err
	}
	if err := p.setLongitude(longitude); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, NewValidationError("owner_id", "required", "an owner id is required")
	}
	p.OwnerID = ownerID
	p.Amenities = append([]Amenity(nil), amenities...)
	p.Reviews = []Review{}
	return p, nil
}

func (p *Place) setTitle(v string) error {
	if v == "" {
		return NewValidationError("title", "required", "place title is required")
	}
	if utf8.RuneCountInString(v) > 100 {
		return NewValidationError("title", "max-length", "place title must not exceed 100 characters")
	}
	p.Title = v
	return nil
}

func (p *Place) setPrice(v float64) error {
	if v <= 0 {
		return NewValidationError("price", "range", "price must be a positive value")
	}
	p.Price = v
	return nil
}

func (p *Place) setLatitude(v float64) error {
	if v < -90.0 || v > 90.0 {
		return NewValidationError("latitude", "range", "latitude must be within the range of -90.0 to 90.0")
	}
	p.Latitude = v
	return nil
}

func (p *Place) setLongitude(v float64) error {
	if v < -180.0 || v > 180.0 {
		return NewValidationError("longitude", "range", "longitude must be within the range of -180.0 to 180.0")
	}
	p.Longitude = v
	return nil
}

// HasAmenity 按 ID 判断成员资格
func (p *Place) HasAmenity(amenityID string) bool {
	for i := range p.Amenities {
		if p.Amenities[i].ID == amenityID {
			return true
		}
	}
	return false
}

// AddAmenity 幂等追加：已存在（按 ID）则不动
func (p *Place) AddAmenity(a *Amenity) {
	if a == nil || p.HasAmenity(a.ID) {
		return
	}
	p.Amenities = append(p.Amenities, *a)
	p.Touch()
}

// RemoveAmenity 按 ID 摘除，返回是否真的摘掉了
func (p *Place) RemoveAmenity(amenityID string) bool {
	for i := range p.Amenities {
		if p.Amenities[i].ID == amenityID {
			p.Amenities = append(p.Amenities[:i], p.Amenities[i+1:]...)
			p.Touch()
			return true
		}
	}
	return false
}

// AddReview 挂接评论：PlaceID 不匹配直接拒绝，重复（按 ID）为空操作
func (p *Place) AddReview(r *Review) error {
	if r == nil {
		return NewValidationError("review", "required", "review is required")
	}
	if r.PlaceID != p.ID {
		return NewValidationError("place_id", "format", "review does not belong to this place")
	}
	for i := range p.Reviews {
		if p.Reviews[i].ID == r.ID {
			return nil
		}
	}
	p.Reviews = append(p.Reviews, *r)
	p.Touch()
	return nil
}

// RemoveReview 级联删除 place 或删除单条评论时摘除挂接
func (p *Place) RemoveReview(reviewID string) bool {
	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
			p.Touch()
			return true
		}
	}
	return false
}

// ApplyUpdate 白名单更新，改副本、全过再落回；
// owner_id 与关联集合不在白名单内
func (p *Place) ApplyUpdate(fields map[string]any) error {
	next := *p
	for key, raw := range fields {
		switch key {
		case "title":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			if err := next.setTitle(v); err != nil {
				return err
			}
		case "description":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			next.Description = v
		case "price":
			v, err := coerceFloat(key, raw)
			if err != nil {
				return err
			}
			if err := next.setPrice(v); err != nil {
				return err
			}
		case "latitude":
			v, err := coerceFloat(key, raw)
			if err != nil {
				return err
			}
			if err := next.setLatitude(v); err != nil {
				return err
			}
		case "longitude":
			v, err := coerceFloat(key, raw)
			if err != nil {
				return err
			}
			if err := next.setLongitude(v); err != nil {
				return err
			}
		default:
			return NewValidationError(key, "policy", "unknown field")
		}
	}
	next.Touch()
	*p = next
	return nil
}
