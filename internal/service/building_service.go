package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/repository"
)

// BuildingService 楼栋服务接口
type BuildingService interface {
	ListBuildings(ctx context.Context) ([]*domain.Building, error)
	GetBuilding(ctx context.Context, buildingID string) (*domain.BuildingWithRooms, error)
	CreateBuilding(ctx context.Context, userID, name, code string, address *string) (*domain.Building, error)
	UpdateBuilding(ctx context.Context, userID, buildingID string, update repository.BuildingUpdate) (*domain.Building, error)
	DeleteBuilding(ctx context.Context, userID, buildingID string) error
}

type buildingService struct {
	buildings repository.BuildingsRepository
	rooms     repository.RoomsRepository
	readings  repository.ReadingsRepository
	logger    *zap.Logger
}

// NewBuildingService 创建楼栋服务
func NewBuildingService(
	buildings repository.BuildingsRepository,
	rooms repository.RoomsRepository,
	readings repository.ReadingsRepository,
	logger *zap.Logger,
) BuildingService {
	return &buildingService{buildings: buildings, rooms: rooms, readings: readings, logger: logger}
}

func (s *buildingService) ListBuildings(ctx context.Context) ([]*domain.Building, error) {
	return s.buildings.ListBuildings(ctx)
}

func (s *buildingService) GetBuilding(ctx context.Context, buildingID string) (*domain.BuildingWithRooms, error) {
	building, err := s.buildings.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListRoomsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	out := &domain.BuildingWithRooms{
		Building: *building,
		Rooms:    make([]domain.RoomWithLatestReading, 0, len(rooms)),
	}
	for _, room := range rooms {
		withReading := domain.RoomWithLatestReading{Room: *room}
		latest, err := s.readings.LatestReadingForRoom(ctx, room.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		withReading.LatestReading = latest
		out.Rooms = append(out.Rooms, withReading)
	}
	return out, nil
}

func (s *buildingService) CreateBuilding(ctx context.Context, userID, name, code string, address *string) (*domain.Building, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if name == "" || code == "" {
		return nil, Validationf("missing required fields: name, code")
	}

	building, err := s.buildings.CreateBuilding(ctx, &domain.Building{
		Name:    name,
		Code:    code,
		Address: address,
		UserID:  userID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Validationf("building code %s is already in use", code)
		}
		return nil, err
	}

	s.logger.Info("building created",
		zap.String("building_id", building.ID),
		zap.String("code", building.Code),
	)
	return building, nil
}

func (s *buildingService) UpdateBuilding(ctx context.Context, userID, buildingID string, update repository.BuildingUpdate) (*domain.Building, error) {
	if err := s.requireOwner(ctx, userID, buildingID); err != nil {
		return nil, err
	}
	return s.buildings.UpdateBuilding(ctx, buildingID, update)
}

func (s *buildingService) DeleteBuilding(ctx context.Context, userID, buildingID string) error {
	if err := s.requireOwner(ctx, userID, buildingID); err != nil {
		return err
	}
	// Rooms under the building are removed by the cascading FK.
	if err := s.buildings.DeleteBuilding(ctx, buildingID); err != nil {
		return err
	}
	s.logger.Info("building deleted", zap.String("building_id", buildingID))
	return nil
}

func (s *buildingService) requireOwner(ctx context.Context, userID, buildingID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	building, err := s.buildings.GetBuilding(ctx, buildingID)
	if err != nil {
		return err
	}
	if building.UserID != userID {
		return ErrUnauthorized
	}
	return nil
}
