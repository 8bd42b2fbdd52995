// Package judge sends rubric prompts to the judge model and turns its free
// text answers into scores.
package judge

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spboyer/socialcc/internal/models"
)

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ExtractScore returns the last number in text, clamped to the global
// score range. Integral values have no decimal point. Text without a
// number yields "".
func ExtractScore(text string) string {
	if text == "" {
		return ""
	}

	nums := numberPattern.FindAllString(text, -1)
	if len(nums) == 0 {
		return ""
	}

	// out-of-range numbers come back as ±Inf and clamp below
	v, err := strconv.ParseFloat(nums[len(nums)-1], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return ""
	}

	v = max(v, models.GlobalScoreRange.Min)
	v = min(v, models.GlobalScoreRange.Max)

	if math.Abs(v-math.Trunc(v)) < 1e-9 {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ScoreOutput scores a stored judge output cell. Cells holding an ERROR
// marker score empty instead of picking up numbers from the error text.
func ScoreOutput(cell string) string {
	if strings.HasPrefix(cell, ErrorPrefix) {
		return ""
	}
	return ExtractScore(cell)
}
