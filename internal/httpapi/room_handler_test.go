package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/airquality"
	"github.com/Saifr72000/airsense-platform/internal/display"
	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/repository"
	"github.com/Saifr72000/airsense-platform/internal/sensor"
	"github.com/Saifr72000/airsense-platform/internal/service"
)

// fakeRoomService 测试用房间服务
type fakeRoomService struct {
	rooms      map[string]*domain.Room
	resolution display.Resolution
	readings   []*domain.SensorReading
}

func newFakeRoomService() *fakeRoomService {
	sensorID := "esp32-001"
	return &fakeRoomService{
		rooms: map[string]*domain.Room{
			"r-1": {ID: "r-1", Name: "Lab A", RoomCode: "A-101", BuildingID: "b-1", SensorID: &sensorID, UserID: "u-1"},
		},
		resolution: display.Resolution{Source: display.SourceNone},
	}
}

func (f *fakeRoomService) ListRooms(ctx context.Context) ([]domain.RoomWithLatestReading, error) {
	out := []domain.RoomWithLatestReading{}
	for _, r := range f.rooms {
		out = append(out, domain.RoomWithLatestReading{Room: *r})
	}
	return out, nil
}

func (f *fakeRoomService) GetRoom(ctx context.Context, roomID string) (*domain.RoomWithLatestReading, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.RoomWithLatestReading{Room: *r}, nil
}

func (f *fakeRoomService) CreateRoom(ctx context.Context, userID, name, roomCode, buildingID string, sensorID *string) (*domain.Room, error) {
	if userID == "" {
		return nil, service.ErrUnauthorized
	}
	r := &domain.Room{ID: "r-new", Name: name, RoomCode: roomCode, BuildingID: buildingID, SensorID: sensorID, UserID: userID}
	f.rooms[r.ID] = r
	return r, nil
}

func (f *fakeRoomService) UpdateRoom(ctx context.Context, userID, roomID string, update repository.RoomUpdate) (*domain.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.SensorID != nil && *update.SensorID == "" {
		r.SensorID = nil
	}
	return r, nil
}

func (f *fakeRoomService) DeleteRoom(ctx context.Context, userID, roomID string) error {
	if _, ok := f.rooms[roomID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rooms, roomID)
	return nil
}

func (f *fakeRoomService) ResolveDisplay(ctx context.Context, roomID string) (*domain.Room, display.Resolution, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, display.Resolution{}, repository.ErrNotFound
	}
	return r, f.resolution, nil
}

func (f *fakeRoomService) RecentReadings(ctx context.Context, roomID string, limit int) ([]*domain.SensorReading, error) {
	if _, ok := f.rooms[roomID]; !ok {
		return nil, repository.ErrNotFound
	}
	return f.readings, nil
}

func newRoomHandler() (*RoomHandler, *fakeRoomService) {
	svc := newFakeRoomService()
	return NewRoomHandler(svc, newFakeAuthService(), zap.NewNop()), svc
}

func TestRoomRoutes_Get(t *testing.T) {
	h, _ := newRoomHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r-1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A-101")
}

func TestRoomRoutes_DisplayLive(t *testing.T) {
	h, svc := newRoomHandler()
	liveData := sensor.ProcessedData{Temperature: 22.1, Humidity: 47, CO2: 550, IsValid: true}
	quality := airquality.Calculate(22.1, 47, 550)
	svc.resolution = display.Resolution{
		Source:  display.SourceLive,
		Live:    &liveData,
		Quality: &quality,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r-1/display", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"live"`)
	assert.Contains(t, rec.Body.String(), `"temperature":22.1`)
}

func TestRoomRoutes_DisplayNone(t *testing.T) {
	h, _ := newRoomHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r-1/display", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"none"`)
}

func TestRoomRoutes_UnbindSensor(t *testing.T) {
	h, svc := newRoomHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/rooms/r-1",
		strings.NewReader(`{"sensor_id":""}`))
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.rooms["r-1"].SensorID)
}

func TestRoomRoutes_CreateRequiresAuth(t *testing.T) {
	h, _ := newRoomHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms",
		strings.NewReader(`{"name":"Lab B","room_code":"B-201","building_id":"b-1"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoomRoutes_Export(t *testing.T) {
	h, svc := newRoomHandler()
	score := 92
	level := airquality.LevelGood
	svc.readings = []*domain.SensorReading{{
		ID:              "rd-1",
		RoomID:          "r-1",
		SensorID:        "esp32-001",
		Temperature:     21.5,
		Humidity:        48,
		CO2:             620,
		QualityScore:    &score,
		QualityLevel:    &level,
		Recommendations: []string{"Air quality is excellent! This is a great space for focused work or study sessions"},
		CreatedAt:       time.Now(),
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r-1/readings/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "readings-r-1.xlsx")
	require.NotEmpty(t, rec.Body.Bytes())
}

func TestRoomRoutes_ExportUnknownRoom(t *testing.T) {
	h, _ := newRoomHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/missing/readings/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
