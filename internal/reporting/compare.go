package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/socialcc/internal/models"
	"github.com/spboyer/socialcc/internal/pipeline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/sync/errgroup"
)

// Format selects how a comparison is rendered.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json, markdown or html)", s)
	}
}

// LoadReports reads result files concurrently. Reports keep the order of
// paths.
func LoadReports(ctx context.Context, paths []string) ([]*RunReport, error) {
	reports := make([]*RunReport, len(paths))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, path := range paths {
		g.Go(func() error {
			s, err := pipeline.ReadResult(path)
			if err != nil {
				return err
			}
			reports[i] = &RunReport{Path: path, Summary: s}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Render writes the comparison in the given format.
func Render(w io.Writer, reports []*RunReport, format Format) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, reports)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(reports))
		return err
	case FormatHTML:
		return renderHTML(w, reports)
	default:
		return renderTable(w, reports)
	}
}

type jsonReport struct {
	Model  string             `json:"model"`
	Path   string             `json:"path,omitempty"`
	Scores map[string]float64 `json:"scores"`
	Best   []string           `json:"best,omitempty"`
}

func renderJSON(w io.Writer, reports []*RunReport) error {
	best := bestByRubric(reports)
	out := make([]jsonReport, 0, len(reports))

	for i, rep := range reports {
		jr := jsonReport{Model: rep.Summary.Model, Path: rep.Path, Scores: map[string]float64{}}
		for _, r := range models.Rubrics {
			jr.Scores[string(r)] = rep.Summary.Means[r]
			if best[r] == i {
				jr.Best = append(jr.Best, string(r))
			}
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// bestByRubric returns, for each rubric, the index of the report with the
// highest mean. Ties go to the earlier report.
func bestByRubric(reports []*RunReport) map[models.Rubric]int {
	best := make(map[models.Rubric]int, len(models.Rubrics))
	for _, r := range models.Rubrics {
		best[r] = -1
		for i, rep := range reports {
			if best[r] < 0 || rep.Summary.Means[r] > reports[best[r]].Summary.Means[r] {
				best[r] = i
			}
		}
	}
	return best
}

func cells(reports []*RunReport, mark string) ([]string, [][]string) {
	header := pipeline.ResultHeader()
	best := bestByRubric(reports)
	rows := make([][]string, 0, len(reports))

	for i, rep := range reports {
		row := []string{rep.Summary.Model}
		for _, r := range models.Rubrics {
			v := fmt.Sprintf("%.6f", rep.Summary.Means[r])
			if len(reports) > 1 && best[r] == i {
				v += mark
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return header, rows
}

func renderTable(w io.Writer, reports []*RunReport) error {
	header, rows := cells(reports, " *")

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(c)
				continue
			}
			b.WriteString(padRight(c, widths[i]))
		}
		b.WriteString("\n")
	}

	writeRow(header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = strings.Repeat("─", widths[i])
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// Markdown renders the comparison as a GitHub-flavoured table. The best
// model per rubric is in bold.
func Markdown(reports []*RunReport) string {
	header, rows := cells(reports, "")
	best := bestByRubric(reports)

	var b strings.Builder
	b.WriteString("# SocialCC comparison\n\n")
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")

	for i, row := range rows {
		for j, r := range models.Rubrics {
			if len(reports) > 1 && best[r] == i {
				row[j+1] = "**" + row[j+1] + "**"
			}
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	return b.String()
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>SocialCC comparison</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
`

func renderHTML(w io.Writer, reports []*RunReport) error {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(Markdown(reports)), &body); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}

	if _, err := io.WriteString(w, htmlHead); err != nil {
		return err
	}
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
