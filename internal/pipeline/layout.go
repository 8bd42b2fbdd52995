// Package pipeline runs the SocialCC stages over their CSV files: prepare,
// dialogue, clean, judge prompts, judge, merge and result.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/socialcc/internal/models"
	"github.com/spboyer/socialcc/internal/utils"
)

// Payload column names of the stage files.
const (
	PromptColumn        = "Prompt"
	DialogueColumn      = "Dialogue"
	CleanDialogueColumn = "Dialogue_raw"
)

// Layout holds every file path a run reads or writes. Paths are computed
// once so stages never assemble names themselves.
type Layout struct {
	// Model is the reviewer model as given; file names use its sanitised form.
	Model string

	Source          string
	WriterPrompts   string
	ReviewerPrompts string

	Dialogue      string
	CleanDialogue string

	JudgePrompts string
	JudgeOutputs map[models.Rubric]string
	Evaluation   string
	Result       string

	// Transcripts is the optional directory for per-dialogue JSON archives.
	Transcripts string
}

// NewLayout lays out a run for the reviewer model. dataDir holds the
// benchmark and prompt files; outputDir receives everything else.
func NewLayout(dataDir, outputDir, model string) *Layout {
	safe := utils.SanitizeModelName(model)
	process := filepath.Join(outputDir, "evaluation_data", "process")

	l := &Layout{
		Model:           model,
		Source:          filepath.Join(dataDir, "SocialCC.csv"),
		WriterPrompts:   filepath.Join(dataDir, "SocialCC_Agent_1.csv"),
		ReviewerPrompts: filepath.Join(dataDir, "SocialCC_Agent_2.csv"),
		Dialogue:        filepath.Join(outputDir, fmt.Sprintf("dialogue_%s.csv", safe)),
		CleanDialogue:   filepath.Join(outputDir, fmt.Sprintf("dialogue_%s_clean.csv", safe)),
		JudgePrompts:    filepath.Join(process, fmt.Sprintf("eva_prompt_%s_clean.csv", safe)),
		JudgeOutputs:    make(map[models.Rubric]string, len(models.Rubrics)),
		Evaluation:      filepath.Join(outputDir, "evaluation_data", fmt.Sprintf("eva_%s.csv", safe)),
		Result:          filepath.Join(outputDir, "result", fmt.Sprintf("result_%s.csv", safe)),
	}

	for _, r := range models.Rubrics {
		l.JudgeOutputs[r] = filepath.Join(process, fmt.Sprintf("eva_%s_clean_%s.csv", safe, r))
	}

	return l
}

// Artifacts lists the files a finished run produced for this model, in
// stage order.
func (l *Layout) Artifacts() []string {
	out := []string{l.Dialogue, l.CleanDialogue, l.JudgePrompts}
	for _, r := range models.Rubrics {
		out = append(out, l.JudgeOutputs[r])
	}
	return append(out, l.Evaluation, l.Result)
}
