package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jobtasks/dashboard/internal/application/views"
	"github.com/jobtasks/dashboard/internal/domain/entities"
)

// PDFFilename is the download name for a report generated at now.
func PDFFilename(now time.Time) string {
	return fmt.Sprintf("task-report-%s.pdf", now.UTC().Format("2006-01-02"))
}

type column struct {
	title string
	width float64
	value func(t *entities.Task) string
}

var reportColumns = []column{
	{"Title", 60, func(t *entities.Task) string { return t.Title }},
	{"Status", 25, func(t *entities.Task) string { return string(t.Status) }},
	{"Priority", 20, func(t *entities.Task) string { return string(t.Priority) }},
	{"Category", 25, func(t *entities.Task) string { return string(t.Category) }},
	{"Progress", 20, func(t *entities.Task) string { return strconv.Itoa(t.Progress) + "%" }},
	{"Deadline", 25, func(t *entities.Task) string { return t.Deadline.UTC().Format("2006-01-02") }},
}

// WritePDF renders the task report: a heading, a status summary and one
// table row per task.
func WritePDF(w io.Writer, tasks []entities.Task, now time.Time) error {
	summary := views.Summarize(tasks, now)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Management Report", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 10, "Task Management Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Generated on "+now.Format("January 02, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Total Tasks: %d", summary.Total),
		fmt.Sprintf("Completed: %d", summary.Completed),
		fmt.Sprintf("In Progress: %d", summary.InProgress),
		fmt.Sprintf("To Do: %d", summary.Todo),
	} {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(79, 70, 229)
		pdf.SetTextColor(255, 255, 255)
		for _, c := range reportColumns {
			pdf.CellFormat(c.width, 7, c.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i := range tasks {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for _, c := range reportColumns {
			text := tr(c.value(&tasks[i]))
			for len(text) > 0 && pdf.GetStringWidth(text) > c.width-2 {
				text = text[:len(text)-1]
			}
			pdf.CellFormat(c.width, 6, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
