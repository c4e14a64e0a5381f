package amqp

import (
	"encoding/json"
	"time"

	"bikeshare/internal/report"
)

// ReportMessage carries a computed report to downstream consumers.
type ReportMessage struct {
	Source    string          `json:"source"`
	Report    report.Document `json:"report"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewReportMessage(source string, doc report.Document) *ReportMessage {
	return &ReportMessage{
		Source:    source,
		Report:    doc,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportMessageFromJSON(data []byte) (*ReportMessage, error) {
	var msg ReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
