package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
)

func exportTasks() []entities.Task {
	return []entities.Task{
		{
			Title:       `Say "hi"`,
			Description: "with, comma",
			Status:      entities.TaskStatusInProgress,
			Priority:    entities.PriorityHigh,
			Category:    entities.CategoryDesign,
			Progress:    40,
			TimeSpent:   90,
			Deadline:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt:   time.Date(2024, 5, 2, 13, 4, 5, 0, time.UTC),
		},
		{
			Title:     "Plain",
			Status:    entities.TaskStatusTodo,
			Priority:  entities.PriorityLow,
			Category:  entities.CategoryDocuments,
			Deadline:  time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 5, 3, 0, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportTasks()); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	want := strings.Join([]string{
		`Title,Description,Status,Priority,Category,Progress,Time Spent (min),Deadline,Created At`,
		`"Say ""hi""","with, comma","in-progress","high","design","40%","90","2024-06-01","2024-05-02 13:04:05"`,
		`"Plain","","todo","low","documents","0%","0","2024-06-02","2024-05-03 05:00:00"`,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	if got := buf.String(); got != strings.Join(csvHeader, ",") {
		t.Errorf("WriteCSV(nil) = %q", got)
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC)
	if got := CSVFilename(now); got != "tasks-2024-07-09.csv" {
		t.Errorf("CSVFilename() = %q", got)
	}
	if got := PDFFilename(now); got != "task-report-2024-07-09.pdf" {
		t.Errorf("PDFFilename() = %q", got)
	}
}

func TestWritePDF(t *testing.T) {
	tasks := exportTasks()
	for i := 0; i < 60; i++ {
		tasks = append(tasks, entities.Task{Title: strings.Repeat("long title ", 10), Status: entities.TaskStatusCompleted})
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, tasks, time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WritePDF() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}
