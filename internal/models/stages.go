package models

// PromptPair is what the prepare stage produces for one scenario.
type PromptPair struct {
	Record   ScenarioRecord
	Writer   string
	Reviewer string
}

// DialogueRow is one scenario with its generated transcript.
type DialogueRow struct {
	Record     ScenarioRecord
	Transcript DialogueTranscript
	// Err is set when the dialogue was cut short by a failed chat call.
	Err error
}
