package sensor

import "math"

// GatewayPayload 网关推送的原始多通道数据（Node-RED WebSocket 消息体）
// Channels may be absent; absence is modeled as nil, the -999 sentinel only
// appears in ProcessedData where displays expect it.
type GatewayPayload struct {
	TempDHT  *float64 `json:"airsense/tempDHT"`
	Humidity *float64 `json:"airsense/humidity"`
	TempDS   *float64 `json:"airsense/tempDS"`
	RawCO2   *float64 `json:"airsense/co2"`
}

// ProcessedData 归一化后的单条传感器读数
type ProcessedData struct {
	Temperature float64 `json:"temperature"` // °C, 1 decimal place, or -999
	Humidity    int     `json:"humidity"`    // %, rounded, or -999
	CO2         int     `json:"co2"`         // ppm, or -999
	RawCO2      int     `json:"raw_co2"`     // raw ADC value, or -999
	IsValid     bool    `json:"is_valid"`
}

// ProcessPayload 将原始网关消息归一化为一条读数
// Primary temperature source is the DS18B20 channel; the DHT channel is the
// fallback. A reading is valid when both temperature and CO₂ resolved;
// humidity may be invalid on its own (displayed as "N/A").
func ProcessPayload(p GatewayPayload) ProcessedData {
	temperature := float64(SentinelInvalid)
	if p.TempDS != nil && *p.TempDS != SentinelInvalid {
		temperature = *p.TempDS
	} else if p.TempDHT != nil {
		temperature = *p.TempDHT
	}

	humidity := float64(SentinelInvalid)
	if p.Humidity != nil {
		humidity = *p.Humidity
	}

	rawCO2 := SentinelInvalid
	if p.RawCO2 != nil {
		rawCO2 = int(math.Round(*p.RawCO2))
	}
	co2PPM := ConvertRawCO2ToPPM(rawCO2)

	out := ProcessedData{
		Temperature: SentinelInvalid,
		Humidity:    SentinelInvalid,
		CO2:         co2PPM,
		RawCO2:      rawCO2,
		IsValid:     temperature != SentinelInvalid && co2PPM != SentinelInvalid,
	}
	if temperature != SentinelInvalid {
		out.Temperature = math.Round(temperature*10) / 10
	}
	if humidity != SentinelInvalid {
		out.Humidity = int(math.Round(humidity))
	}
	return out
}
