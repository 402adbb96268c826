package specification

import "gorm.io/gorm"

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

type ByGroup struct {
	Group string
}

func (s ByGroup) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("setting_group = ?", s.Group)
}

type UnreadOnly struct{}

func (s UnreadOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}
