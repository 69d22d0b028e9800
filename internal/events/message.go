package events

import (
	"encoding/json"
	"time"
)

// RoutingKeyResumeProcessed is used for every ResumeProcessed event.
const RoutingKeyResumeProcessed = "resume.processed"

// ResumeProcessed is published after a resume has been persisted.
type ResumeProcessed struct {
	ResumeID   string    `json:"resumeId"`
	FileName   string    `json:"fileName,omitempty"`
	Skills     []string  `json:"skills"`
	UploadedAt time.Time `json:"uploadedAt"`
	Version    int       `json:"version"`
}

// EncodeMessage returns the JSON representation of an event. A nil skills
// slice is sent as an empty array.
func EncodeMessage(msg ResumeProcessed) ([]byte, error) {
	if msg.Skills == nil {
		msg.Skills = []string{}
	}
	if msg.Version == 0 {
		msg.Version = 1
	}
	return json.Marshal(msg)
}
