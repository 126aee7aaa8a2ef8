package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/display"
	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/repository"
)

// RoomService 房间服务接口
type RoomService interface {
	ListRooms(ctx context.Context) ([]domain.RoomWithLatestReading, error)
	GetRoom(ctx context.Context, roomID string) (*domain.RoomWithLatestReading, error)
	CreateRoom(ctx context.Context, userID, name, roomCode, buildingID string, sensorID *string) (*domain.Room, error)
	UpdateRoom(ctx context.Context, userID, roomID string, update repository.RoomUpdate) (*domain.Room, error)
	DeleteRoom(ctx context.Context, userID, roomID string) error

	// ResolveDisplay 解析房间展示数据（实时 vs 落库 vs 无数据）
	ResolveDisplay(ctx context.Context, roomID string) (*domain.Room, display.Resolution, error)

	// RecentReadings 房间最近 limit 条读数（导出用）
	RecentReadings(ctx context.Context, roomID string, limit int) ([]*domain.SensorReading, error)
}

type roomService struct {
	rooms     repository.RoomsRepository
	buildings repository.BuildingsRepository
	readings  repository.ReadingsRepository
	resolver  *display.Resolver
	logger    *zap.Logger
}

// NewRoomService 创建房间服务
func NewRoomService(
	rooms repository.RoomsRepository,
	buildings repository.BuildingsRepository,
	readings repository.ReadingsRepository,
	resolver *display.Resolver,
	logger *zap.Logger,
) RoomService {
	return &roomService{
		rooms:     rooms,
		buildings: buildings,
		readings:  readings,
		resolver:  resolver,
		logger:    logger,
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]domain.RoomWithLatestReading, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RoomWithLatestReading, 0, len(rooms))
	for _, room := range rooms {
		withReading := domain.RoomWithLatestReading{Room: *room}
		latest, err := s.readings.LatestReadingForRoom(ctx, room.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		withReading.LatestReading = latest
		out = append(out, withReading)
	}
	return out, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*domain.RoomWithLatestReading, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	out := &domain.RoomWithLatestReading{Room: *room}
	latest, err := s.readings.LatestReadingForRoom(ctx, roomID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	out.LatestReading = latest
	return out, nil
}

func (s *roomService) CreateRoom(ctx context.Context, userID, name, roomCode, buildingID string, sensorID *string) (*domain.Room, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if name == "" || roomCode == "" || buildingID == "" {
		return nil, Validationf("missing required fields: name, room_code, building_id")
	}

	building, err := s.buildings.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	// A room's owner must equal its building's owner.
	if building.UserID != userID {
		return nil, ErrUnauthorized
	}

	room, err := s.rooms.CreateRoom(ctx, &domain.Room{
		Name:       name,
		RoomCode:   roomCode,
		BuildingID: buildingID,
		SensorID:   sensorID,
		UserID:     userID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Validationf("room code %s is already in use", roomCode)
		}
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("room_code", room.RoomCode),
	)
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, userID, roomID string, update repository.RoomUpdate) (*domain.Room, error) {
	if err := s.requireOwner(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.rooms.UpdateRoom(ctx, roomID, update)
}

func (s *roomService) DeleteRoom(ctx context.Context, userID, roomID string) error {
	if err := s.requireOwner(ctx, userID, roomID); err != nil {
		return err
	}
	if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
		return err
	}
	s.logger.Info("room deleted", zap.String("room_id", roomID))
	return nil
}

func (s *roomService) ResolveDisplay(ctx context.Context, roomID string) (*domain.Room, display.Resolution, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, display.Resolution{}, err
	}
	latest, err := s.readings.LatestReadingForRoom(ctx, roomID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, display.Resolution{}, err
	}
	return room, s.resolver.Resolve(room, latest), nil
}

func (s *roomService) RecentReadings(ctx context.Context, roomID string, limit int) ([]*domain.SensorReading, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.readings.ListReadingsForRoom(ctx, roomID, limit)
}

func (s *roomService) requireOwner(ctx context.Context, userID, roomID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room.UserID != userID {
		return ErrUnauthorized
	}
	return nil
}
