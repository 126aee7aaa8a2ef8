package airquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_PerfectConditions(t *testing.T) {
	result := Calculate(21, 50, 500)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, LevelGood, result.Level)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t,
		"Air quality is excellent! This is a great space for focused work or study sessions",
		result.Recommendations[0],
	)
}

func TestCalculate_HighCO2StillGood(t *testing.T) {
	// CO₂ sub-score collapses but temperature and humidity carry the total
	result := Calculate(22, 50, 1500)

	assert.Equal(t, 75, result.Score)
	assert.Equal(t, LevelGood, result.Level)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t,
		"CO₂ is too high (1500 ppm). Open windows immediately to improve ventilation",
		result.Recommendations[0],
	)
	assert.Equal(t, "Consider using mechanical ventilation if available", result.Recommendations[1])
}

func TestCalculate_SlightlyElevatedCO2(t *testing.T) {
	result := Calculate(21, 50, 1000)

	// co2Score = 100 - 200/400*40 = 80 -> total 92
	assert.Equal(t, 92, result.Score)
	assert.Equal(t, LevelGood, result.Level)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t,
		"CO₂ is slightly elevated (1000 ppm). Opening a window would help improve air quality",
		result.Recommendations[0],
	)
}

func TestCalculate_ColdAndDry(t *testing.T) {
	result := Calculate(15, 25, 400)

	// co2 100*0.4 + temp 20*0.3 + humidity 40*0.3 = 58
	assert.Equal(t, 58, result.Score)
	assert.Equal(t, LevelModerate, result.Level)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t,
		"Temperature is too cold (15.0°C). Turn on heating for better comfort",
		result.Recommendations[0],
	)
	assert.Equal(t,
		"Humidity is too low (25%). Use a humidifier or place water containers in the room",
		result.Recommendations[1],
	)
}

func TestCalculate_HotAndHumid(t *testing.T) {
	result := Calculate(29.5, 80, 600)

	assert.Contains(t, result.Recommendations,
		"Temperature is too warm (29.5°C). Open windows or adjust air conditioning")
	assert.Contains(t, result.Recommendations,
		"Humidity is too high (80%). Use a dehumidifier or open windows to increase airflow")
}

func TestCalculate_PoorEverything(t *testing.T) {
	result := Calculate(10, 10, 3000)

	// co2Score 0, tempScore 0, humidityScore 10 -> 3
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, LevelPoor, result.Level)
	// CO₂ recommendations come first, then temperature, then humidity
	require.Len(t, result.Recommendations, 4)
	assert.Contains(t, result.Recommendations[0], "CO₂ is too high (3000 ppm)")
	assert.Contains(t, result.Recommendations[2], "too cold")
	assert.Contains(t, result.Recommendations[3], "too low")
}

func TestCalculate_RecommendationOrdering(t *testing.T) {
	// All three parameter groups fire: CO₂ pair, then temperature, then humidity
	result := Calculate(30, 85, 2000)

	require.Len(t, result.Recommendations, 4)
	assert.Contains(t, result.Recommendations[0], "CO₂ is too high")
	assert.Equal(t, "Consider using mechanical ventilation if available", result.Recommendations[1])
	assert.Contains(t, result.Recommendations[2], "Temperature is too warm")
	assert.Contains(t, result.Recommendations[3], "Humidity is too high")
}

func TestCalculate_LevelBoundaries(t *testing.T) {
	// Score >= 70 is good, >= 40 is moderate, below is poor
	assert.Equal(t, LevelGood, Calculate(21, 50, 500).Level)

	moderate := Calculate(15, 25, 400)
	assert.GreaterOrEqual(t, moderate.Score, 40)
	assert.Less(t, moderate.Score, 70)
	assert.Equal(t, LevelModerate, moderate.Level)

	assert.Equal(t, LevelPoor, Calculate(10, 10, 3000).Level)
}
