package airquality

import (
	"fmt"
	"math"
)

// Level 空气质量等级
type Level string

const (
	LevelGood     Level = "good"
	LevelModerate Level = "moderate"
	LevelPoor     Level = "poor"
)

// Result 空气质量评分结果
type Result struct {
	Score           int      `json:"score"`
	Level           Level    `json:"level"`
	Recommendations []string `json:"recommendations"`
}

// Thresholds for air quality parameters.
const (
	co2Good     = 800  // Below 800 ppm is good
	co2Moderate = 1200 // 800-1200 ppm is moderate; above is poor

	tempMin        = 18.0 // Below 18°C is too cold
	tempOptimalMin = 20.0
	tempOptimalMax = 24.0
	tempMax        = 26.0 // Above 26°C is too hot

	humidityMin        = 30.0 // Below 30% is too dry
	humidityOptimalMin = 40.0
	humidityOptimalMax = 60.0
	humidityMax        = 70.0 // Above 70% is too humid
)

// Calculate 根据温度、湿度和 CO₂ 浓度计算空气质量评分
// Score ranges from 0-100, where 100 is perfect air quality.
// Sub-scores are weighted 40% CO₂ / 30% temperature / 30% humidity.
// Recommendation order is meaningful: CO₂ first, then temperature, then
// humidity, then a single level-keyed fallback when nothing else fired.
func Calculate(temperature, humidity float64, co2 int) Result {
	recommendations := []string{}

	// CO₂ sub-score (weighted 40%)
	var co2Score float64
	switch {
	case co2 <= co2Good:
		co2Score = 100
	case co2 <= co2Moderate:
		// Linear scale from 100 to 60
		co2Score = 100 - float64(co2-co2Good)/float64(co2Moderate-co2Good)*40
	default:
		// Linear scale from 60 to 0
		co2Score = math.Max(0, 60-float64(co2-co2Moderate)/800*60)
	}

	if co2 > co2Moderate {
		recommendations = append(recommendations,
			fmt.Sprintf("CO₂ is too high (%d ppm). Open windows immediately to improve ventilation", co2),
			"Consider using mechanical ventilation if available",
		)
	} else if co2 > co2Good {
		recommendations = append(recommendations,
			fmt.Sprintf("CO₂ is slightly elevated (%d ppm). Opening a window would help improve air quality", co2),
		)
	}

	// Temperature sub-score (weighted 30%)
	var tempScore float64
	switch {
	case temperature < tempMin:
		tempScore = math.Max(0, 50-(tempMin-temperature)*10)
		recommendations = append(recommendations,
			fmt.Sprintf("Temperature is too cold (%.1f°C). Turn on heating for better comfort", temperature),
		)
	case temperature > tempMax:
		tempScore = math.Max(0, 50-(temperature-tempMax)*10)
		recommendations = append(recommendations,
			fmt.Sprintf("Temperature is too warm (%.1f°C). Open windows or adjust air conditioning", temperature),
		)
	case temperature < tempOptimalMin:
		tempScore = 50 + (temperature-tempMin)/(tempOptimalMin-tempMin)*50
	case temperature > tempOptimalMax:
		tempScore = 50 + (tempMax-temperature)/(tempMax-tempOptimalMax)*50
	default:
		tempScore = 100
	}

	// Humidity sub-score (weighted 30%)
	var humidityScore float64
	switch {
	case humidity < humidityMin:
		humidityScore = math.Max(0, 50-(humidityMin-humidity)*2)
		recommendations = append(recommendations,
			fmt.Sprintf("Humidity is too low (%g%%). Use a humidifier or place water containers in the room", humidity),
		)
	case humidity > humidityMax:
		humidityScore = math.Max(0, 50-(humidity-humidityMax)*2)
		recommendations = append(recommendations,
			fmt.Sprintf("Humidity is too high (%g%%). Use a dehumidifier or open windows to increase airflow", humidity),
		)
	case humidity < humidityOptimalMin:
		humidityScore = 50 + (humidity-humidityMin)/(humidityOptimalMin-humidityMin)*50
	case humidity > humidityOptimalMax:
		humidityScore = 50 + (humidityMax-humidity)/(humidityMax-humidityOptimalMax)*50
	default:
		humidityScore = 100
	}

	score := int(math.Round(co2Score*0.4 + tempScore*0.3 + humidityScore*0.3))

	var level Level
	switch {
	case score >= 70:
		level = LevelGood
		if len(recommendations) == 0 {
			recommendations = append(recommendations,
				"Air quality is excellent! This is a great space for focused work or study sessions")
		}
	case score >= 40:
		level = LevelModerate
		if len(recommendations) == 0 {
			recommendations = append(recommendations,
				"Air quality is acceptable but could be improved. Consider taking a short break")
		}
	default:
		level = LevelPoor
		if len(recommendations) == 0 {
			recommendations = append(recommendations,
				"Air quality needs immediate attention. Take action to improve conditions")
		}
	}

	return Result{
		Score:           score,
		Level:           level,
		Recommendations: recommendations,
	}
}
