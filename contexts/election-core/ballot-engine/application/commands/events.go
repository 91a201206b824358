package commands

import (
	"encoding/json"
	"time"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/ports"
)

// newBallotEnvelope builds canonical envelopes for command-side events.
// Poll-scoped events are partitioned by poll id so audit consumers observe a
// stable per-poll ordering.
func newBallotEnvelope(
	eventID string,
	eventType string,
	pollKey string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "ballot-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "poll_id",
		PartitionKey:     pollKey,
		Data:             payload,
	}, nil
}
