package entities

import "time"

// Voter is one registry entry. Eligibility is monotonic: once granted it is
// never revoked and entries are never deleted.
type Voter struct {
	VoterID      string
	RegisteredBy string
	RegisteredAt time.Time
}
