package sensor

import "math"

// SentinelInvalid 表示无效读数（传感器不工作）
const SentinelInvalid = -999

// maxPPM caps extrapolation beyond the last calibration point.
const maxPPM = 10000

// calibrationPoint maps a raw 10-bit ADC reading to a CO₂ concentration.
type calibrationPoint struct {
	adc int
	ppm int
}

// Calibration reference for the MG811 CO₂ sensor on a 10-bit ADC (0-1023):
// - Fresh air (~400 ppm): ~310-350 ADC
// - 1000 ppm CO₂: ~370 ADC
// - 2000 ppm CO₂: ~430 ADC
// - 5000 ppm CO₂: ~530 ADC
var calibrationPoints = []calibrationPoint{
	{adc: 310, ppm: 400},
	{adc: 350, ppm: 400},
	{adc: 370, ppm: 1000},
	{adc: 430, ppm: 2000},
	{adc: 530, ppm: 5000},
}

// ConvertRawCO2ToPPM 将原始 ADC 读数转换为 ppm 浓度
// Invalid input (sentinel or outside 0-1023) returns the sentinel unchanged;
// it signals "no reading", not an error. Below the lowest calibration point
// the value is clamped to the fresh-air estimate; above the highest it is
// extrapolated with the slope of the last segment and capped at 10000 ppm.
func ConvertRawCO2ToPPM(rawADC int) int {
	if rawADC == SentinelInvalid || rawADC < 0 || rawADC > 1023 {
		return SentinelInvalid
	}

	if rawADC < calibrationPoints[0].adc {
		return calibrationPoints[0].ppm
	}

	last := calibrationPoints[len(calibrationPoints)-1]
	if rawADC > last.adc {
		prev := calibrationPoints[len(calibrationPoints)-2]
		slope := float64(last.ppm-prev.ppm) / float64(last.adc-prev.adc)
		extrapolated := float64(last.ppm) + slope*float64(rawADC-last.adc)
		ppm := int(math.Round(extrapolated))
		if ppm > maxPPM {
			return maxPPM
		}
		return ppm
	}

	for i := 0; i < len(calibrationPoints)-1; i++ {
		p1 := calibrationPoints[i]
		p2 := calibrationPoints[i+1]
		if rawADC >= p1.adc && rawADC <= p2.adc {
			slope := float64(p2.ppm-p1.ppm) / float64(p2.adc-p1.adc)
			return int(math.Round(float64(p1.ppm) + slope*float64(rawADC-p1.adc)))
		}
	}

	// Unreachable: the table covers [310, 530] without gaps.
	return calibrationPoints[0].ppm
}
