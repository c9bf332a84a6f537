package transcript

import "time"

// Entry is one engine output line as it was received. Kind is the decoded
// command keyword, or empty when the line failed to decode.
type Entry struct {
	ID         string    `json:"id" bson:"_id"`
	EngineID   string    `json:"engine_id" bson:"engine_id"`
	Line       string    `json:"line" bson:"line"`
	Kind       string    `json:"kind,omitempty" bson:"kind,omitempty"`
	Error      string    `json:"error,omitempty" bson:"error,omitempty"`
	ReceivedAt time.Time `json:"received_at" bson:"received_at"`
}
