package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/cardano2vn/group-signup/internal/roster"
	"github.com/cardano2vn/group-signup/internal/storage"
)

// StudentHandler serves the full roster, as JSON and as an .xlsx
// download for organizers.
type StudentHandler struct {
	Roster *roster.Reader
}

func NewStudentHandler(r *roster.Reader) *StudentHandler {
	return &StudentHandler{Roster: r}
}

func (h *StudentHandler) ListStudentsHandler(c *gin.Context) {
	students, err := h.Roster.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch student list", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "students": students})
}

// ExportStudentsHandler streams the roster as a spreadsheet attachment.
func (h *StudentHandler) ExportStudentsHandler(c *gin.Context) {
	students, err := h.Roster.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch student list for export", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Students"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		slog.Error("Failed to prepare export workbook", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	for i, header := range storage.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	for i, s := range students {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.School)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), s.Group)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		slog.Error("Failed to stream export workbook", "error", err)
	}
}
