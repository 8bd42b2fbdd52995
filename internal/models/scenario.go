package models

// Column positions shared by every 22-column stage file. The source file
// carries an extra Relationship column at position 12; see SourceHeader.
const (
	ColDataID = iota
	ColWVSN
	ColOption
	ColWVSClass
	ColKnowledgeCountry
	ColValueCountry
	ColAgent1
	ColAgent2
	ColAgent3
	ColAgent1Background
	ColAgent2Background
	ColAgent3Background
	ColScenario
	ColEvent1
	ColEvent2
	ColCulturalKnowledge
	ColCulturalValue
	ColAgent1Goal1
	ColAgent1Goal2
	ColAgent2Goal1
	ColAgent2Goal2
	ColPayload

	// RowWidth is the number of positional columns in a stage file.
	RowWidth
)

// MetadataHeader names the 21 scenario columns that lead every stage file.
var MetadataHeader = []string{
	"Data_ID", "WVSN", "Option", "WVS_Class", "Cultural_Knowledge_Country", "Cultural_Value_country",
	"Agent_1", "Agent_2", "Agent_3", "Agent_1_Background", "Agent_2_Background", "Agent_3_Background",
	"Scenario", "Event_1", "Event_2", "Cultural_Knowledge", "Cultural_Value",
	"Agent_1_Goal_1", "Agent_1_Goal_2", "Agent_2_Goal_1", "Agent_2_Goal_2",
}

// SourceHeader is the layout of the raw benchmark file (SocialCC.csv).
var SourceHeader = []string{
	"Data_ID", "WVSN", "Option", "WVS_Class", "Cultural_Knowledge_Country", "Cultural_Value_country",
	"Agent_1", "Agent_2", "Agent_3", "Agent_1_Background", "Agent_2_Background", "Agent_3_Background",
	"Relationship", "Scenario", "Event_1", "Event_2", "Cultural_Knowledge", "Cultural_Value",
	"Agent_1_Goal_1", "Agent_1_Goal_2", "Agent_2_Goal_1", "Agent_2_Goal_2",
}

// CastKind says how many named characters take part in a scenario.
type CastKind string

const (
	CastTwoParty   CastKind = "two-party"
	CastThreeParty CastKind = "three-party"
)

// Agent is one named character and their background text.
type Agent struct {
	Name       string `json:"name"`
	Background string `json:"background"`
}

// ScenarioRecord is one benchmark scenario. It is built once by the row
// loader and never modified afterwards.
type ScenarioRecord struct {
	DataID           string `json:"data_id"`
	WVSN             string `json:"wvsn"`
	Option           string `json:"option"`
	WVSClass         string `json:"wvs_class"`
	KnowledgeCountry string `json:"cultural_knowledge_country"`
	ValueCountry     string `json:"cultural_value_country"`

	Writer   Agent `json:"agent_1"`
	Reviewer Agent `json:"agent_2"`
	Third    Agent `json:"agent_3"`

	// Cast is fixed from Third.Name when the record is loaded.
	Cast CastKind `json:"cast"`

	// Relationship only exists in the source file; stage files drop it.
	Relationship string `json:"relationship,omitempty"`

	Scenario          string `json:"scenario"`
	Event1            string `json:"event_1"`
	Event2            string `json:"event_2"`
	CulturalKnowledge string `json:"cultural_knowledge"`
	CulturalValue     string `json:"cultural_value"`

	WriterGoals   [2]string `json:"agent_1_goals"`
	ReviewerGoals [2]string `json:"agent_2_goals"`
}

// CastFor picks the cast variant from the third character's name.
func CastFor(thirdName string) CastKind {
	if thirdName != "" {
		return CastThreeParty
	}
	return CastTwoParty
}

// Metadata returns the record's 21 leading stage-file columns, in
// MetadataHeader order.
func (r *ScenarioRecord) Metadata() []string {
	return []string{
		r.DataID, r.WVSN, r.Option, r.WVSClass, r.KnowledgeCountry, r.ValueCountry,
		r.Writer.Name, r.Reviewer.Name, r.Third.Name,
		r.Writer.Background, r.Reviewer.Background, r.Third.Background,
		r.Scenario, r.Event1, r.Event2, r.CulturalKnowledge, r.CulturalValue,
		r.WriterGoals[0], r.WriterGoals[1], r.ReviewerGoals[0], r.ReviewerGoals[1],
	}
}

// RecordFromStageRow builds a record from the first 21 columns of a stage
// file row. The caller has already checked the row width.
func RecordFromStageRow(row []string) ScenarioRecord {
	return ScenarioRecord{
		DataID:            row[ColDataID],
		WVSN:              row[ColWVSN],
		Option:            row[ColOption],
		WVSClass:          row[ColWVSClass],
		KnowledgeCountry:  row[ColKnowledgeCountry],
		ValueCountry:      row[ColValueCountry],
		Writer:            Agent{Name: row[ColAgent1], Background: row[ColAgent1Background]},
		Reviewer:          Agent{Name: row[ColAgent2], Background: row[ColAgent2Background]},
		Third:             Agent{Name: row[ColAgent3], Background: row[ColAgent3Background]},
		Cast:              CastFor(row[ColAgent3]),
		Scenario:          row[ColScenario],
		Event1:            row[ColEvent1],
		Event2:            row[ColEvent2],
		CulturalKnowledge: row[ColCulturalKnowledge],
		CulturalValue:     row[ColCulturalValue],
		WriterGoals:       [2]string{row[ColAgent1Goal1], row[ColAgent1Goal2]},
		ReviewerGoals:     [2]string{row[ColAgent2Goal1], row[ColAgent2Goal2]},
	}
}
