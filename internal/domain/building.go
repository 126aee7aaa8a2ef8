package domain

import "time"

// Building 楼栋领域模型（对应 buildings 表）
// code 在全库唯一，由 DB 约束保证。
type Building struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	Address   *string   `json:"address" db:"address"` // nullable
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BuildingWithRooms 楼栋 + 房间列表（含每个房间的最新读数）
type BuildingWithRooms struct {
	Building
	Rooms []RoomWithLatestReading `json:"rooms"`
}
