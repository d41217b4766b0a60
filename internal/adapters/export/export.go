// Package export renders the task collection as a CSV sheet or a PDF report.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jobtasks/dashboard/internal/domain/entities"
)

const (
	csvDeadlineLayout  = "2006-01-02"
	csvCreatedAtLayout = "2006-01-02 15:04:05"
)

var csvHeader = []string{
	"Title", "Description", "Status", "Priority", "Category",
	"Progress", "Time Spent (min)", "Deadline", "Created At",
}

// CSVFilename is the download name for a sheet generated at now.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("tasks-%s.csv", now.UTC().Format("2006-01-02"))
}

// WriteCSV writes one line per task after a bare header line. Every value is
// wrapped in double quotes with embedded quotes doubled, lines are joined by
// "\n" and there is no trailing newline.
func WriteCSV(w io.Writer, tasks []entities.Task) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(csvHeader, ","))

	for _, t := range tasks {
		bw.WriteByte('\n')
		row := []string{
			t.Title,
			t.Description,
			string(t.Status),
			string(t.Priority),
			string(t.Category),
			strconv.Itoa(t.Progress) + "%",
			strconv.Itoa(t.TimeSpent),
			t.Deadline.UTC().Format(csvDeadlineLayout),
			t.CreatedAt.UTC().Format(csvCreatedAtLayout),
		}
		for i, cell := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(cell))
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
