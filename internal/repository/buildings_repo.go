package repository

import (
	"context"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

// BuildingUpdate 楼栋可更新字段（nil 表示不更新）
type BuildingUpdate struct {
	Name    *string
	Address *string
}

// BuildingsRepository 楼栋Repository接口
type BuildingsRepository interface {
	// ListBuildings 按创建时间倒序返回全部楼栋
	ListBuildings(ctx context.Context) ([]*domain.Building, error)

	// GetBuilding 获取单个楼栋
	GetBuilding(ctx context.Context, buildingID string) (*domain.Building, error)

	// CreateBuilding 创建楼栋；code 冲突返回 ErrDuplicate
	CreateBuilding(ctx context.Context, building *domain.Building) (*domain.Building, error)

	// UpdateBuilding 更新楼栋（name/address）
	UpdateBuilding(ctx context.Context, buildingID string, update BuildingUpdate) (*domain.Building, error)

	// DeleteBuilding 删除楼栋（级联删除房间，由 DB 外键保证）
	DeleteBuilding(ctx context.Context, buildingID string) error
}
