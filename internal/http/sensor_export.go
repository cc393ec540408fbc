package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

var readingsExportHeader = []string{
	"Timestamp",
	"Soil Moisture (%)",
	"Temperature (°C)",
	"Humidity (%)",
	"Light Intensity (lux)",
	"pH Level",
}

// Export streams the user's reading history as an .xlsx workbook.
func (h *SensorHandler) Export(w http.ResponseWriter, r *http.Request) {
	hours := parseInt(r.URL.Query().Get("hours"), 24)
	limit := parseInt(r.URL.Query().Get("limit"), 1000)

	readings, err := h.sensors.History(r.Context(), userIDFrom(r.Context()), hours, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	data, err := generateReadingsExcel(readings)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("sensor-readings-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	_, _ = w.Write(data)
}

func generateReadingsExcel(readings []domain.SensorReading) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here, WriteTo needs the file open.

	sheetName := "Sensor Readings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
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

	for col, header := range readingsExportHeader {
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

	if err := f.SetColWidth(sheetName, "A", "F", 22); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for rowIdx, reading := range readings {
		row := rowIdx + 2
		values := []any{
			reading.Timestamp.Format("2006-01-02 15:04:05"),
			reading.SoilMoisture,
			reading.Temperature,
			reading.Humidity,
			reading.LightIntensity,
			reading.PHLevel,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
