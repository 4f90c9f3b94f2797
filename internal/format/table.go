package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pubdeck/internal/fileval"
	"pubdeck/internal/model"
)

const tableBodyMax = 60

// WriteTable writes a human-readable columnar rendering of the known CLI
// payloads. Unknown payload shapes fall back to single-line JSON so scripts
// piping through --format table never lose data.
func WriteTable(w io.Writer, v any) error {
	switch t := v.(type) {
	case []model.Post:
		return writePostsTable(w, t)
	case model.Post:
		return writePostsTable(w, []model.Post{t})
	case []FileReport:
		return writeFileReportsTable(w, t)
	case FileReport:
		return writeFileReportsTable(w, []FileReport{t})
	default:
		return WriteJSON(w, v, false)
	}
}

// FileReport is the verdict for one inspected file, as printed by
// `pubdeck files check`.
type FileReport struct {
	Path      string `json:"path"`
	MediaType string `json:"mediaType,omitempty"`
	SizeBytes int64  `json:"sizeBytes"`
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
}

// ReportFor builds a FileReport from an inspected attachment and verdict.
func ReportFor(a fileval.Attachment, r fileval.Result) FileReport {
	return FileReport{
		Path:      a.Path,
		MediaType: a.MediaType,
		SizeBytes: a.SizeBytes,
		Accepted:  r.OK,
		Reason:    r.Reason,
	}
}

func writePostsTable(w io.Writer, posts []model.Post) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tBODY\tUSER")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, oneLine(p.Title, tableBodyMax), oneLine(p.Body, tableBodyMax), p.UserID)
	}
	return tw.Flush()
}

func writeFileReportsTable(w io.Writer, reports []FileReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTYPE\tSIZE\tVERDICT")
	for _, r := range reports {
		verdict := "ok"
		if !r.Accepted {
			verdict = "rejected: " + r.Reason
		}
		mt := r.MediaType
		if mt == "" {
			mt = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Path, mt, r.SizeBytes, verdict)
	}
	return tw.Flush()
}

// oneLine collapses newlines and truncates so table rows stay single lines.
func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
