package dataset

import (
	"slices"
	"strconv"

	"github.com/spboyer/socialcc/internal/models"
)

// sourceWidth is the column count of the raw benchmark file.
var sourceWidth = len(models.SourceHeader)

// ReadSource loads the raw benchmark file. Cells are cleaned, rows with no
// content are dropped and short rows are padded rather than skipped.
func ReadSource(path string) ([]models.ScenarioRecord, error) {
	_, records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	out := make([]models.ScenarioRecord, 0, len(records))

	for _, rec := range records {
		if isBlank(rec) {
			continue
		}

		row := make([]string, sourceWidth)
		for i := range row {
			if i < len(rec) {
				row[i] = cleanCell(rec[i])
			}
		}

		out = append(out, recordFromSourceRow(row))
	}

	return out, nil
}

func recordFromSourceRow(row []string) models.ScenarioRecord {
	return models.ScenarioRecord{
		DataID:            row[0],
		WVSN:              row[1],
		Option:            normalizeOption(row[2]),
		WVSClass:          row[3],
		KnowledgeCountry:  row[4],
		ValueCountry:      row[5],
		Writer:            models.Agent{Name: row[6], Background: row[9]},
		Reviewer:          models.Agent{Name: row[7], Background: row[10]},
		Third:             models.Agent{Name: row[8], Background: row[11]},
		Cast:              models.CastFor(row[8]),
		Relationship:      row[12],
		Scenario:          row[13],
		Event1:            row[14],
		Event2:            row[15],
		CulturalKnowledge: row[16],
		CulturalValue:     row[17],
		WriterGoals:       [2]string{row[18], row[19]},
		ReviewerGoals:     [2]string{row[20], row[21]},
	}
}

// normalizeOption renders the Option column as an integer, "0" when blank.
// Non-numeric values are kept as they are.
func normalizeOption(v string) string {
	if v == "" {
		return "0"
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	return strconv.Itoa(int(f))
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if cleanCell(c) != "" {
			return false
		}
	}
	return true
}

// StageRow is one record from a 22-column stage file along with its
// payload column (prompt, raw dialogue or cleaned dialogue).
type StageRow struct {
	Line    int
	Record  models.ScenarioRecord
	Payload string
}

// StageFile is the parsed content of a stage file.
type StageFile struct {
	Header  []string
	Rows    []StageRow
	Skipped []int
	// Records counts every data row, skipped ones included.
	Records int
}

// ReadStage loads a 22-column stage file. Rows with fewer columns are
// recorded in Skipped and otherwise ignored.
func ReadStage(path string) (*StageFile, error) {
	header, records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	sf := &StageFile{Header: header, Records: len(records)}

	for i, rec := range records {
		line := i + 2
		if len(rec) < models.RowWidth {
			sf.Skipped = append(sf.Skipped, line)
			continue
		}
		sf.Rows = append(sf.Rows, StageRow{
			Line:    line,
			Record:  models.RecordFromStageRow(rec),
			Payload: rec[models.ColPayload],
		})
	}

	return sf, nil
}

// ReadPromptPairs pairs the two agent prompt files by line number. A line
// that is short in either file is skipped in both and reported once. Extra
// rows in the longer file are ignored.
func ReadPromptPairs(writerPath, reviewerPath string) ([]models.PromptPair, []int, error) {
	writers, err := ReadStage(writerPath)
	if err != nil {
		return nil, nil, err
	}
	reviewers, err := ReadStage(reviewerPath)
	if err != nil {
		return nil, nil, err
	}

	// data rows start on line 2
	lastLine := min(writers.Records, reviewers.Records) + 1

	byLine := make(map[int]StageRow, len(reviewers.Rows))
	for _, r := range reviewers.Rows {
		byLine[r.Line] = r
	}

	pairs := make([]models.PromptPair, 0, len(writers.Rows))
	for _, w := range writers.Rows {
		if w.Line > lastLine {
			break
		}
		r, ok := byLine[w.Line]
		if !ok {
			continue
		}
		pairs = append(pairs, models.PromptPair{
			Record:   w.Record,
			Writer:   w.Payload,
			Reviewer: r.Payload,
		})
	}

	var skipped []int
	for _, line := range append(append([]int{}, writers.Skipped...), reviewers.Skipped...) {
		if line <= lastLine {
			skipped = append(skipped, line)
		}
	}
	slices.Sort(skipped)
	return pairs, slices.Compact(skipped), nil
}

// StageHeader returns the metadata header followed by the payload column.
func StageHeader(payload string) []string {
	h := make([]string, 0, models.RowWidth)
	h = append(h, models.MetadataHeader...)
	return append(h, payload)
}

// WriteStage writes a stage file whose rows are metadata plus one payload.
func WriteStage(path, payloadColumn string, rows []StageRow) error {
	w, err := Create(path, StageHeader(payloadColumn))
	if err != nil {
		return err
	}

	for _, r := range rows {
		if err := w.Write(append(r.Record.Metadata(), r.Payload)); err != nil {
			w.Close() //nolint:errcheck
			return err
		}
	}

	return w.Close()
}
