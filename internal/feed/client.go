package feed

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/sensor"
)

// State 连接状态机状态
type State string

const (
	StateIdle         State = "idle"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
	// StateStopped 手动断开，不再自动重连
	StateStopped State = "stopped"
)

const (
	DefaultURL                  = "ws://localhost:1880/ws/sensors"
	DefaultReconnectInterval    = 5 * time.Second
	DefaultMaxReconnectAttempts = 10

	// reconnectPause is the short settle delay Reconnect waits between
	// tearing down the old connection and dialing the new one.
	reconnectPause   = 100 * time.Millisecond
	handshakeTimeout = 5 * time.Second
)

// Options 实时数据客户端配置
type Options struct {
	URL                  string
	AutoConnect          bool
	ReconnectInterval    time.Duration
	MaxReconnectAttempts int
}

// Client 网关实时数据客户端
// Owns the WebSocket lifecycle: one connection attempt in flight at a time,
// bounded automatic reconnection with a fixed delay, last-write-wins current
// reading. All transitions are guarded by the internal state, so callers
// never need to inspect connection readiness themselves.
type Client struct {
	opts   Options
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	conn       *websocket.Conn
	gen        int // connection generation, stale read loops are ignored
	attempts   int
	retryTimer *time.Timer
	current    *sensor.ProcessedData
	lastErr    error
	onReading  func(sensor.ProcessedData)
}

// NewClient 创建实时数据客户端
// With AutoConnect the first connection attempt starts immediately.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = DefaultReconnectInterval
	}
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	c := &Client{
		opts:   opts,
		logger: logger,
		state:  StateIdle,
	}
	if opts.AutoConnect {
		go c.Connect()
	}
	return c
}

// OnReading 注册读数回调（最多一个订阅者）
func (c *Client) OnReading(fn func(sensor.ProcessedData)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReading = fn
}

// Connect 发起一次连接
// A connect request while already connecting or connected is a no-op.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		return
	}
	c.stopRetryTimerLocked()
	c.state = StateConnecting
	c.gen++
	gen := c.gen
	url := c.opts.URL
	c.mu.Unlock()

	c.logger.Debug("connecting to sensor gateway", zap.String("url", url))

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(url, nil)

	c.mu.Lock()
	if c.gen != gen || c.state != StateConnecting {
		// Disconnect or Reconnect raced with the dial.
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("gateway connection failed", zap.Error(err))
		c.handleConnectionLost(gen, err)
		return
	}
	c.conn = conn
	c.state = StateConnected
	c.attempts = 0
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info("connected to sensor gateway", zap.String("url", url))
	go c.readLoop(conn, gen)
}

// Disconnect 手动断开，取消重连定时器，不再自动重试
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.stopRetryTimerLocked()
	c.state = StateStopped
	c.gen++
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

// Reconnect 重置重试计数并重新建立连接
func (c *Client) Reconnect() {
	c.mu.Lock()
	c.attempts = 0
	c.mu.Unlock()

	c.Disconnect()
	time.AfterFunc(reconnectPause, c.Connect)
}

// Connected 当前是否已连接
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

// State 返回当前状态机状态
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current 返回最近一条归一化读数（last-write-wins，不排队）
func (c *Client) Current() (sensor.ProcessedData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return sensor.ProcessedData{}, false
	}
	return *c.current, true
}

// Err 返回最近一次上报的错误（nil 表示正常）
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) readLoop(conn *websocket.Conn, gen int) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.handleConnectionLost(gen, err)
			return
		}

		var payload sensor.GatewayPayload
		if err := json.Unmarshal(message, &payload); err != nil {
			// Recoverable: the connection stays up and the last
			// published reading is kept.
			c.logger.Warn("failed to parse gateway message", zap.Error(err))
			c.mu.Lock()
			c.lastErr = fmt.Errorf("failed to parse sensor data: %w", err)
			c.mu.Unlock()
			continue
		}

		data := sensor.ProcessPayload(payload)

		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		c.current = &data
		fn := c.onReading
		c.mu.Unlock()

		if fn != nil {
			fn(data)
		}
	}
}

// handleConnectionLost drives the Disconnected -> retry transition for both
// dial failures and connections closed by the peer.
func (c *Client) handleConnectionLost(gen int, cause error) {
	c.mu.Lock()
	if c.gen != gen || c.state == StateStopped {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = StateDisconnected

	if c.attempts < c.opts.MaxReconnectAttempts {
		c.attempts++
		attempt := c.attempts
		c.stopRetryTimerLocked()
		c.retryTimer = time.AfterFunc(c.opts.ReconnectInterval, c.Connect)
		c.mu.Unlock()
		c.logger.Info("scheduling gateway reconnect",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.opts.MaxReconnectAttempts),
			zap.Error(cause),
		)
		return
	}

	c.lastErr = fmt.Errorf(
		"failed to connect after %d attempts, check the gateway connection",
		c.opts.MaxReconnectAttempts,
	)
	c.mu.Unlock()
	c.logger.Error("gateway reconnect attempts exhausted",
		zap.Int("max_attempts", c.opts.MaxReconnectAttempts),
		zap.Error(cause),
	)
}

func (c *Client) stopRetryTimerLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}
