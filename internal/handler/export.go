package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"besfit/internal/tracker"
	"besfit/internal/util"
)

// ExportHandler downloads today's log as CSV or XLSX.
type ExportHandler struct {
	Manager *tracker.Manager
	Log     logrus.FieldLogger
}

func NewExportHandler(m *tracker.Manager, log logrus.FieldLogger) *ExportHandler {
	return &ExportHandler{Manager: m, Log: log}
}

var exportHeader = []string{"Kind", "Meal", "Name", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)", "Duration (min)", "MET"}

// exportRows flattens the snapshot: foods first in logging order, then
// exercises. Burned calories are written as negative values.
func exportRows(snap tracker.Snapshot) [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	rows := make([][]string, 0, len(snap.Foods)+len(snap.Exercises))
	for _, e := range snap.Foods {
		rows = append(rows, []string{"food", string(e.MealType), e.Name, f(e.Calories), f(e.Protein), f(e.Carbs), f(e.Fat), "", ""})
	}
	for _, e := range snap.Exercises {
		rows = append(rows, []string{"exercise", "", e.Name, strconv.Itoa(-e.CaloriesBurned), "", "", "", f(e.Duration), f(e.MET)})
	}
	return rows
}

func exportName(ext string) string {
	return fmt.Sprintf("besfit_%s.%s", time.Now().Format("20060102"), ext)
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	snap := s.Snapshot()
	sum := s.Summary()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exportName("csv")))

	// UTF-8 BOM so spreadsheet apps detect the encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	_ = w.WriteAll(exportRows(snap))
	_ = w.Write([]string{"total", "", "net", strconv.FormatFloat(sum.NetCalories, 'f', -1, 64), "", "", "", "", ""})
	w.Flush()
	if err := w.Error(); err != nil {
		h.Log.WithError(err).Warn("write csv export")
	}
}

func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	snap := s.Snapshot()
	sum := s.Summary()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Today"
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}
	rows := exportRows(snap)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := make([]interface{}, len(row))
		for j, v := range row {
			// numeric columns stay numbers in the sheet
			if n, err := strconv.ParseFloat(v, 64); err == nil && j >= 3 {
				values[j] = n
			} else {
				values[j] = v
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
			return
		}
	}

	// summary block below the entries
	start := len(rows) + 3
	summary := [][]interface{}{
		{"Total intake", sum.TotalIntake},
		{"Total burned", sum.TotalBurned},
		{"Net calories", sum.NetCalories},
		{"Remaining goal", sum.RemainingGoal},
		{"Water (glasses)", sum.WaterCount},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, start+i)
		r := row
		_ = f.SetSheetRow(sheet, cell, &r)
	}

	_ = f.SetColWidth(sheet, "A", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "I", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exportName("xlsx")))
	if err := f.Write(c.Writer); err != nil {
		h.Log.WithError(err).Warn("write xlsx export")
	}
}
