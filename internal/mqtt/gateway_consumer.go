package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/config"
	"github.com/Saifr72000/airsense-platform/internal/sensor"
	"github.com/Saifr72000/airsense-platform/internal/service"
)

// GatewayConsumer 通过 MQTT 消费网关传感器数据
// An alternative ingestion path for gateways that publish to a broker instead
// of pushing over WebSocket. Disabled by default.
type GatewayConsumer struct {
	config        *config.MQTTConfig
	client        *Client
	ingestService service.IngestService
	logger        *zap.Logger
}

// NewGatewayConsumer 创建MQTT消费者
func NewGatewayConsumer(
	cfg *config.MQTTConfig,
	client *Client,
	ingestService service.IngestService,
	logger *zap.Logger,
) *GatewayConsumer {
	return &GatewayConsumer{
		config:        cfg,
		client:        client,
		ingestService: ingestService,
		logger:        logger,
	}
}

// Start 启动消费者
func (c *GatewayConsumer) Start(ctx context.Context) error {
	if err := c.client.Subscribe(c.config.Topic, 1, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to gateway topic: %w", err)
	}

	c.logger.Info("MQTT consumer started",
		zap.String("topic", c.config.Topic),
	)

	<-ctx.Done()
	return nil
}

// Stop 停止消费者
func (c *GatewayConsumer) Stop(ctx context.Context) error {
	if err := c.client.Unsubscribe(c.config.Topic); err != nil {
		c.logger.Error("failed to unsubscribe", zap.Error(err))
	}

	c.logger.Info("MQTT consumer stopped")
	return nil
}

// handleMessage 处理一条网关消息
// 主题格式: airsense/{sensor_id}/data
func (c *GatewayConsumer) handleMessage(topic string, payload []byte) error {
	c.logger.Debug("received MQTT message",
		zap.String("topic", topic),
		zap.Int("payload_size", len(payload)),
	)

	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return fmt.Errorf("invalid topic format: %s", topic)
	}
	sensorID := parts[1]

	var raw sensor.GatewayPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		c.logger.Error("failed to unmarshal MQTT message",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	data := sensor.ProcessPayload(raw)
	if !data.IsValid {
		// Readings missing a temperature or CO₂ channel are not persisted.
		c.logger.Debug("dropping invalid gateway reading",
			zap.String("sensor_id", sensorID),
		)
		return nil
	}

	result, err := c.ingestService.Ingest(context.Background(), service.IngestRequest{
		SensorID:    sensorID,
		Temperature: data.Temperature,
		Humidity:    ingestHumidity(data),
		CO2:         data.CO2,
	})
	if err != nil {
		c.logger.Warn("failed to ingest gateway reading",
			zap.String("sensor_id", sensorID),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("gateway reading ingested",
		zap.String("sensor_id", sensorID),
		zap.String("reading_id", result.Reading.ID),
		zap.Int("score", result.AirQuality.Score),
	)
	return nil
}

// ingestHumidity 返回可入库的湿度值
// A DHT11 with a broken humidity channel still produces usable temperature and
// CO₂ readings; substitute a neutral 50% instead of storing the -999 marker.
func ingestHumidity(data sensor.ProcessedData) float64 {
	if data.Humidity == sensor.SentinelInvalid {
		return 50
	}
	return float64(data.Humidity)
}
