package httpapi

import (
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/service"
)

// SensorDataHandler 传感器数据上报 Handler
// The POST body is decoded loosely so gateways that send numbers as JSON
// strings are still accepted.
type SensorDataHandler struct {
	ingestService service.IngestService
	logger        *zap.Logger
}

// NewSensorDataHandler 创建传感器数据上报 Handler
func NewSensorDataHandler(ingestService service.IngestService, logger *zap.Logger) *SensorDataHandler {
	return &SensorDataHandler{ingestService: ingestService, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口
func (h *SensorDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.IngestReading(w, r)
	case http.MethodGet:
		h.Usage(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// IngestReading 接收一次传感器上报并落库
func (h *SensorDataHandler) IngestReading(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	sensorID, _ := body["sensor_id"].(string)
	if sensorID == "" || body["temperature"] == nil || body["humidity"] == nil || body["co2"] == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing required fields: sensor_id, temperature, humidity, co2",
		})
		return
	}

	temperature, okT := toFloat(body["temperature"])
	humidity, okH := toFloat(body["humidity"])
	co2, okC := toFloat(body["co2"])
	if !okT || !okH || !okC {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid data types for temperature, humidity, or co2",
		})
		return
	}

	result, err := h.ingestService.Ingest(r.Context(), service.IngestRequest{
		SensorID:    sensorID,
		Temperature: temperature,
		Humidity:    humidity,
		CO2:         int(math.Round(co2)),
	})
	if err != nil {
		h.logger.Warn("sensor data ingestion rejected",
			zap.String("sensor_id", sensorID),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"reading":     result.Reading,
		"air_quality": result.AirQuality,
	})
}

// Usage 返回上报接口的用法说明
func (h *SensorDataHandler) Usage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sensor data ingestion endpoint",
		"usage":   "POST sensor readings to this endpoint",
		"example": map[string]any{
			"sensor_id":   "esp32-001",
			"temperature": 23.5,
			"humidity":    45,
			"co2":         837,
		},
	})
}
