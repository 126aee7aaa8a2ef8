package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUsersRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*domain.User{}}
}

func (f *fakeUsersRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicate
		}
	}
	f.nextID++
	created := *user
	created.ID = fmt.Sprintf("u-%d", f.nextID)
	created.CreatedAt = time.Now()
	f.users[created.ID] = &created
	return &created, nil
}

func (f *fakeUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeBuildingsRepo struct {
	buildings map[string]*domain.Building
	nextID    int
}

func newFakeBuildingsRepo() *fakeBuildingsRepo {
	return &fakeBuildingsRepo{buildings: map[string]*domain.Building{}}
}

func (f *fakeBuildingsRepo) ListBuildings(ctx context.Context) ([]*domain.Building, error) {
	out := []*domain.Building{}
	for _, b := range f.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBuildingsRepo) GetBuilding(ctx context.Context, buildingID string) (*domain.Building, error) {
	b, ok := f.buildings[buildingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeBuildingsRepo) CreateBuilding(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	for _, b := range f.buildings {
		if b.Code == building.Code {
			return nil, repository.ErrDuplicate
		}
	}
	f.nextID++
	created := *building
	created.ID = fmt.Sprintf("b-%d", f.nextID)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.buildings[created.ID] = &created
	return &created, nil
}

func (f *fakeBuildingsRepo) UpdateBuilding(ctx context.Context, buildingID string, update repository.BuildingUpdate) (*domain.Building, error) {
	b, ok := f.buildings[buildingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		b.Name = *update.Name
	}
	if update.Address != nil {
		b.Address = update.Address
	}
	b.UpdatedAt = time.Now()
	return b, nil
}

func (f *fakeBuildingsRepo) DeleteBuilding(ctx context.Context, buildingID string) error {
	if _, ok := f.buildings[buildingID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.buildings, buildingID)
	return nil
}

type fakeRoomsRepo struct {
	rooms  map[string]*domain.Room
	nextID int
}

func newFakeRoomsRepo() *fakeRoomsRepo {
	return &fakeRoomsRepo{rooms: map[string]*domain.Room{}}
}

func (f *fakeRoomsRepo) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	out := []*domain.Room{}
	for _, r := range f.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRoomsRepo) ListRoomsByBuilding(ctx context.Context, buildingID string) ([]*domain.Room, error) {
	out := []*domain.Room{}
	for _, r := range f.rooms {
		if r.BuildingID == buildingID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRoomsRepo) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoomsRepo) GetRoomBySensorID(ctx context.Context, sensorID string) (*domain.Room, error) {
	for _, r := range f.rooms {
		if r.SensorID != nil && *r.SensorID == sensorID {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoomsRepo) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	for _, r := range f.rooms {
		if r.RoomCode == room.RoomCode {
			return nil, repository.ErrDuplicate
		}
	}
	f.nextID++
	created := *room
	created.ID = fmt.Sprintf("r-%d", f.nextID)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.rooms[created.ID] = &created
	return &created, nil
}

func (f *fakeRoomsRepo) UpdateRoom(ctx context.Context, roomID string, update repository.RoomUpdate) (*domain.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		r.Name = *update.Name
	}
	if update.SensorID != nil {
		if *update.SensorID == "" {
			r.SensorID = nil
		} else {
			sid := *update.SensorID
			r.SensorID = &sid
		}
	}
	r.UpdatedAt = time.Now()
	return r, nil
}

func (f *fakeRoomsRepo) DeleteRoom(ctx context.Context, roomID string) error {
	if _, ok := f.rooms[roomID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rooms, roomID)
	return nil
}

type fakeReadingsRepo struct {
	readings []*domain.SensorReading
	nextID   int
}

func newFakeReadingsRepo() *fakeReadingsRepo {
	return &fakeReadingsRepo{}
}

func (f *fakeReadingsRepo) CreateReading(ctx context.Context, reading *domain.SensorReading) (*domain.SensorReading, error) {
	f.nextID++
	created := *reading
	created.ID = fmt.Sprintf("rd-%d", f.nextID)
	created.CreatedAt = time.Now()
	f.readings = append(f.readings, &created)
	return &created, nil
}

func (f *fakeReadingsRepo) LatestReadingForRoom(ctx context.Context, roomID string) (*domain.SensorReading, error) {
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].RoomID == roomID {
			return f.readings[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeReadingsRepo) ListReadingsForRoom(ctx context.Context, roomID string, limit int) ([]*domain.SensorReading, error) {
	out := []*domain.SensorReading{}
	for i := len(f.readings) - 1; i >= 0 && len(out) < limit; i-- {
		if f.readings[i].RoomID == roomID {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}
