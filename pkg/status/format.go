package status

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// FormatSummary formats the counts of a run as one line
func FormatSummary(s *Summary) string {
	return fmt.Sprintf("%d files: %d new, %d modified, %d unchanged, %d replacements",
		len(s.Files()),
		s.Count(StatusNew),
		s.Count(StatusModified),
		s.Count(StatusUnchanged),
		s.Replacements())
}

// 📋 RenderTable renders the summary as a table
func RenderTable(s *Summary) (string, error) {
	data := pterm.TableData{
		{"File", "Status", "Lines", "Changed", "Replacements"},
	}
	for _, r := range s.Files() {
		data = append(data, []string{
			r.Path,
			r.Status.String(),
			strconv.Itoa(r.Lines),
			strconv.Itoa(r.ChangedLines),
			strconv.Itoa(r.Replacements),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering table: %w", err)
	}
	return out, nil
}
