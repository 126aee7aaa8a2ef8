package domain

import "time"

// Room 房间领域模型（对应 rooms 表）
// room_code 全库唯一；sensor_id 为可选的网关传感器标识。
type Room struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	RoomCode   string    `json:"room_code" db:"room_code"`
	BuildingID string    `json:"building_id" db:"building_id"`
	SensorID   *string   `json:"sensor_id" db:"sensor_id"` // nullable
	UserID     string    `json:"user_id" db:"user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// RoomWithLatestReading 房间 + 最新一条读数
type RoomWithLatestReading struct {
	Room
	LatestReading *SensorReading `json:"latest_reading"`
}
