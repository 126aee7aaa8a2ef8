package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config airsense（HTTP API + 实时网关接入）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	Session struct {
		TTL time.Duration
	}
	Feed FeedConfig
	MQTT MQTTConfig
	Log  struct {
		Level  string
		Format string
	}
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// FeedConfig 网关实时数据配置
type FeedConfig struct {
	URL                  string // Node-RED WebSocket 地址
	SensorID             string // 实时数据对应的传感器标识
	AutoConnect          bool
	ReconnectInterval    time.Duration
	MaxReconnectAttempts int
}

// MQTTConfig MQTT 配置（可选的网关摄取通道，默认禁用）
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "airsense")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Session.TTL = time.Duration(parseInt(getEnv("SESSION_TTL_SECONDS", "86400"), 86400)) * time.Second

	// 网关实时数据（Node-RED）
	cfg.Feed.URL = getEnv("GATEWAY_WS_URL", "ws://localhost:1880/ws/sensors")
	cfg.Feed.SensorID = getEnv("GATEWAY_SENSOR_ID", "")
	cfg.Feed.AutoConnect = getEnv("GATEWAY_AUTO_CONNECT", "true") == "true"
	cfg.Feed.ReconnectInterval = time.Duration(parseInt(getEnv("GATEWAY_RECONNECT_SECONDS", "5"), 5)) * time.Second
	cfg.Feed.MaxReconnectAttempts = parseInt(getEnv("GATEWAY_MAX_RECONNECT_ATTEMPTS", "10"), 10)

	// MQTT 摄取通道（默认禁用）
	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "airsense-gateway")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "airsense/+/data")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
