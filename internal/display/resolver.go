package display

import (
	"github.com/Saifr72000/airsense-platform/internal/airquality"
	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/sensor"
)

// Source 展示数据来源
type Source string

const (
	SourceLive   Source = "live"   // 网关实时读数
	SourceStored Source = "stored" // 最近一条持久化读数
	SourceNone   Source = "none"   // 无数据
)

// fallbackHumidity substitutes for an invalid live humidity channel when
// recomputing quality for live data. The ingestion paths make the same
// substitution before persisting, so the scorer never sees -999.
const fallbackHumidity = 50

// LiveSource 实时数据来源（由 feed.Client 实现）
type LiveSource interface {
	Connected() bool
	Current() (sensor.ProcessedData, bool)
}

// Resolution 单个房间的展示结果
type Resolution struct {
	Source  Source                `json:"source"`
	Live    *sensor.ProcessedData `json:"live,omitempty"`
	Stored  *domain.SensorReading `json:"stored,omitempty"`
	Quality *airquality.Result    `json:"quality,omitempty"`
}

// Resolver 决定房间展示实时读数还是落库读数
// Resolution happens on every call; nothing is cached, so polling and the
// live feed stay independent and the freshest valid source always wins.
type Resolver struct {
	live         LiveSource
	feedSensorID string
}

// NewResolver 创建展示解析器
// feedSensorID is the sensor identity carried by the live feed; only rooms
// assigned that sensor are eligible for live display.
func NewResolver(live LiveSource, feedSensorID string) *Resolver {
	return &Resolver{live: live, feedSensorID: feedSensorID}
}

// Resolve 解析一个房间的展示数据
// Live data is preferred when the room's sensor matches the feed, the feed
// is connected and the current reading is valid; quality is recomputed from
// the live values. Otherwise the stored reading's quality (computed at
// ingestion time) is trusted as-is.
func (r *Resolver) Resolve(room *domain.Room, latest *domain.SensorReading) Resolution {
	if r.live != nil && r.feedSensorID != "" &&
		room.SensorID != nil && *room.SensorID == r.feedSensorID &&
		r.live.Connected() {
		if data, ok := r.live.Current(); ok && data.IsValid {
			humidity := float64(data.Humidity)
			if data.Humidity == sensor.SentinelInvalid {
				humidity = fallbackHumidity
			}
			quality := airquality.Calculate(data.Temperature, humidity, data.CO2)
			return Resolution{
				Source:  SourceLive,
				Live:    &data,
				Quality: &quality,
			}
		}
	}

	if latest != nil {
		res := Resolution{Source: SourceStored, Stored: latest}
		if latest.QualityScore != nil && latest.QualityLevel != nil {
			res.Quality = &airquality.Result{
				Score:           *latest.QualityScore,
				Level:           *latest.QualityLevel,
				Recommendations: latest.Recommendations,
			}
		}
		return res
	}

	return Resolution{Source: SourceNone}
}
