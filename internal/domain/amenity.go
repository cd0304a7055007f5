package domain

import "unicode/utf8"

// Amenity 房源设施（如 Wi-Fi、泊车）
type Amenity struct {
	Base
	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"size:128" json:"description"`
}

func (Amenity) TableName() string { return "amenities" }

func NewAmenity(name, description string) (*Amenity, error) {
	a := &Amenity{Base: newBase(), Description: description}
	if err := a.setName(name); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amenity) setName(v string) error {
	if v == "" {
		return NewValidationError("name", "required", "amenity name is required")
	}
	if utf8.RuneCountInString(v) > 50 {
		return NewValidationError("name", "max-length", "amenity name must not exceed 50 characters")
	}
	a.Name = v
	return nil
}

// ApplyUpdate 改副本、全过再落回
func (a *Amenity) ApplyUpdate(fields map[string]any) error {
	next := *a
	for key, raw := range fields {
		switch key {
		case "name":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			if err := next.setName(v); err != nil {
				return err
			}
		case "description":
			v, err := coerceString(key, raw)
			if err != nil {
				return err
			}
			next.Description = v
		default:
			return NewValidationError(key, "policy", "unknown field")
		}
	}
	next.Touch()
	*a = next
	return nil
}
