package transcript

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spboyer/socialcc/internal/models"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{
			name: "five turns make three rounds",
			cell: `[{"role":"writer","content":"Hi"},{"role":"reviewer","content":"Hello"},{"role":"writer","content":"How are you?"},{"role":"reviewer","content":"Fine"},{"role":"writer","content":"Good bye"}]`,
			want: "Round 1:\nAgent 1:\nHi\nAgent 2:\nHello\n" +
				"Round 2:\nAgent 1:\nHow are you?\nAgent 2:\nFine\n" +
				"Round 3:\nAgent 1:\nGood bye\n",
		},
		{
			name: "even number of turns",
			cell: `[{"role":"writer","content":"a"},{"role":"reviewer","content":"b"}]`,
			want: "Round 1:\nAgent 1:\na\nAgent 2:\nb\n",
		},
		{
			name: "empty list",
			cell: `[]`,
			want: "",
		},
		{
			name: "empty cell",
			cell: "   ",
			want: "",
		},
		{
			name: "list of strings",
			cell: `["one","two","three"]`,
			want: "Round 1:\nAgent 1:\none\nAgent 2:\ntwo\nRound 2:\nAgent 1:\nthree\n",
		},
		{
			name: "plain text is kept",
			cell: "  \"already cleaned text\"\n",
			want: "already cleaned text",
		},
		{
			name: "json object is not a list",
			cell: `{"role":"writer"}`,
			want: `{"role":"writer"}`,
		},
		{
			name: "broken json",
			cell: `[{"role":"writer","content":"Hi"`,
			want: `[{"role":"writer","content":"Hi"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.cell)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClean_RoundTripsMarshalledTranscript(t *testing.T) {
	var tr models.DialogueTranscript
	tr.Append(models.RoleWriter, "Line with \"quotes\", commas\nand newlines")
	tr.Append(models.RoleReviewer, "Good bye")

	cell, err := tr.MarshalCell()
	require.NoError(t, err)

	require.Equal(t, "Round 1:\nAgent 1:\nLine with \"quotes\", commas\nand newlines\nAgent 2:\nGood bye\n", Clean(cell))
}
