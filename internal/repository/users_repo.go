package repository

import (
	"context"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

// UsersRepository 用户Repository接口
type UsersRepository interface {
	// CreateUser 创建用户；email 冲突返回 ErrDuplicate
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetUser 按 ID 获取用户
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail 按邮箱获取用户（登录路径）
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
