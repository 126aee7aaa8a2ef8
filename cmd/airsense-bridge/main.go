// airsense-bridge 把网关 WebSocket 实时数据转发到 airsense HTTP API
// For deployments where the gateway and the API server run on different
// hosts: the bridge subscribes to the Node-RED feed locally and POSTs every
// valid reading to /api/v1/sensor-data.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/config"
	"github.com/Saifr72000/airsense-platform/internal/feed"
	"github.com/Saifr72000/airsense-platform/internal/logging"
	"github.com/Saifr72000/airsense-platform/internal/sensor"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "airsense-bridge")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apiBase := os.Getenv("AIRSENSE_API_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}
	sensorID := cfg.Feed.SensorID
	if sensorID == "" {
		logger.Fatal("GATEWAY_SENSOR_ID must be set for the bridge")
	}

	client := resty.New().
		SetBaseURL(apiBase).
		SetRetryCount(3).
		SetHeader("Content-Type", "application/json")

	feedClient := feed.NewClient(feed.Options{
		URL:                  cfg.Feed.URL,
		AutoConnect:          false,
		ReconnectInterval:    cfg.Feed.ReconnectInterval,
		MaxReconnectAttempts: cfg.Feed.MaxReconnectAttempts,
	}, logger)

	feedClient.OnReading(func(data sensor.ProcessedData) {
		if !data.IsValid {
			return
		}
		resp, err := client.R().
			SetBody(readingBody(sensorID, data)).
			Post("/api/v1/sensor-data")
		if err != nil {
			logger.Warn("failed to forward reading", zap.Error(err))
			return
		}
		if resp.IsError() {
			logger.Warn("reading rejected by API",
				zap.Int("status", resp.StatusCode()),
				zap.String("body", resp.String()),
			)
			return
		}
		logger.Debug("reading forwarded",
			zap.Float64("temperature", data.Temperature),
			zap.Int("co2", data.CO2),
		)
	})

	feedClient.Connect()
	logger.Info("bridge started",
		zap.String("feed_url", cfg.Feed.URL),
		zap.String("api_url", apiBase),
		zap.String("sensor_id", sensorID),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	feedClient.Disconnect()
}

// readingBody 构造转发给 API 的请求体
// A missing humidity channel arrives as -999; send a neutral 50% so the score
// is not skewed by the marker value.
func readingBody(sensorID string, data sensor.ProcessedData) map[string]any {
	humidity := data.Humidity
	if humidity == sensor.SentinelInvalid {
		humidity = 50
	}
	return map[string]any{
		"sensor_id":   sensorID,
		"temperature": data.Temperature,
		"humidity":    humidity,
		"co2":         data.CO2,
	}
}
