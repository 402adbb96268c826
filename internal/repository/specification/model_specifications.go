package specification

import "gorm.io/gorm"

type ByModelKind struct {
	Kind string
}

func (s ByModelKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

type DefaultOnly struct{}

func (s DefaultOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_default = ?", true)
}

type ByProvider struct {
	Provider string
}

func (s ByProvider) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ?", s.Provider)
}
