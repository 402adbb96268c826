package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"
)

// SiteSettingRepository stores only overridden settings; names absent
// from the table fall back to their registry defaults.
type SiteSettingRepository interface {
	Upsert(ctx context.Context, setting *entity.SiteSetting) error
	DeleteByName(ctx context.Context, name string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SiteSetting, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SiteSetting, error)
}
