package export

import (
	"time"

	"timesheet-backend/internal/domain/form"
	"timesheet-backend/internal/domain/submission"
)

const submittedAtLayout = "01/02/2006 3:04 PM"

// Table is a rendered grid: one header row and one row per submission.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Project renders submissions of t as a table. names maps user ids to
// display names; unknown ids fall back to the id itself.
func Project(t form.Template, subs []submission.Submission, names map[string]string) Table {
	fields := form.Sort(t).InputFields()

	header := []string{"Submission ID", "Submitted By", "Submitted At"}
	for _, f := range fields {
		header = append(header, f.Label)
	}
	if t.IsApprovalRequired {
		header = append(header, "Status")
	}
	if t.IsSignatureRequired {
		header = append(header, "Signature")
	}

	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		row := make([]string, 0, len(header))
		by := names[s.UserID]
		if by == "" {
			by = s.UserID
		}
		row = append(row, s.ID, by, formatSubmittedAt(s.SubmittedAt))
		for _, f := range fields {
			raw, _ := form.ResolveLegacyKey(s.Data, f)
			row = append(row, form.Cell(raw, f))
		}
		if t.IsApprovalRequired {
			row = append(row, string(s.Status))
		}
		if t.IsSignatureRequired {
			if s.Signed {
				row = append(row, "Signed")
			} else {
				row = append(row, "Not Signed")
			}
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

func formatSubmittedAt(at *time.Time) string {
	if at == nil {
		return ""
	}
	return at.Format(submittedAtLayout)
}
