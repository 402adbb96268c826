package specification

import "gorm.io/gorm"

// NameSearch filters by name or description (case-insensitive, Postgres ILIKE)
type NameSearch struct {
	Query string
}

func (s NameSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
}

// TitleSearch filters chats by title
type TitleSearch struct {
	Query string
}

func (s TitleSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ?", pattern)
}

// DocumentSearch filters documents by name or source URI
type DocumentSearch struct {
	Query string
}

func (s DocumentSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR source_uri ILIKE ?", pattern, pattern)
}

// TextSearch filters chunks by body text
type TextSearch struct {
	Query string
}

func (s TextSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("text ILIKE ?", "%"+s.Query+"%")
}

// UserSearch filters users by email or full name. Mirrors the ILIKE used
// by UserRepository.SearchUsers so list rows and totals agree.
type UserSearch struct {
	Query string
}

func (s UserSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
}
