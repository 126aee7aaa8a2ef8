package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

// ReadingsExportHeader 读数导出表头
var ReadingsExportHeader = []string{
	"Recorded At",
	"Sensor ID",
	"Temperature (°C)",
	"Humidity (%)",
	"CO2 (ppm)",
	"Quality Score",
	"Quality Level",
	"Recommendations",
}

// defaultExportLimit 缺省导出最近多少条读数
const defaultExportLimit = 500

// ExportRoomReadings 导出房间最近读数为 Excel 文件
func (h *RoomHandler) ExportRoomReadings(w http.ResponseWriter, r *http.Request, id string) {
	limit := parseInt(r.URL.Query().Get("limit"), defaultExportLimit)
	if limit <= 0 || limit > 10000 {
		limit = defaultExportLimit
	}

	readings, err := h.roomService.RecentReadings(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := GenerateReadingsExport(readings)
	if err != nil {
		h.logger.Error("failed to generate readings export",
			zap.String("room_id", id),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"readings-%s.xlsx\"", id))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GenerateReadingsExport 生成读数导出 Excel 文件
// readings: 读数列表，如果为空则只生成表头
func GenerateReadingsExport(readings []*domain.SensorReading) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Sensor Readings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close() // Close on error
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 写入表头
	for col, header := range ReadingsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 设置列宽
	columnWidths := []float64{
		20, // Recorded At
		18, // Sensor ID
		16, // Temperature
		14, // Humidity
		12, // CO2
		14, // Quality Score
		14, // Quality Level
		60, // Recommendations
	}
	for i := range ReadingsExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(columnWidths) {
			if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	// 写入数据（第1行是表头，数据从第2行开始）
	for rowIdx, reading := range readings {
		row := rowIdx + 2
		values := []any{
			reading.CreatedAt.Format("2006-01-02 15:04:05"),
			reading.SensorID,
			reading.Temperature,
			reading.Humidity,
			reading.CO2,
		}
		if reading.QualityScore != nil {
			values = append(values, *reading.QualityScore)
		} else {
			values = append(values, "")
		}
		if reading.QualityLevel != nil {
			values = append(values, string(*reading.QualityLevel))
		} else {
			values = append(values, "")
		}
		values = append(values, strings.Join(reading.Recommendations, "; "))

		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, colIdx+1, err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	// Write to bytes buffer
	// Note: File must remain open during Write operation
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}
