package model

// Question change-feed event actions.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
)

// QuestionEvent is one entry in the question change feed. Delivery is
// at-least-once; consumers de-duplicate by question id.
type QuestionEvent struct {
	Action   string   `json:"action"`
	Question Question `json:"question"`
}

// SyncDeltaResponse returns all question changes since a given timestamp.
type SyncDeltaResponse struct {
	Questions     []Question `json:"questions"`
	SyncTimestamp string     `json:"syncTimestamp"`
}
