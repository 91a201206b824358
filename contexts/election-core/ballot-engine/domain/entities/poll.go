package entities

import "time"

// Candidate is one poll option with its running tally. Candidate membership
// is fixed at poll creation; only VoteCount changes afterwards.
type Candidate struct {
	Name      string
	VoteCount uint64
}

// WinnerNoVotes is the winner value reported for a poll with zero ballots.
const WinnerNoVotes = "no votes cast"

// Poll is the aggregate for a single ballot. Poll identifiers are assigned
// sequentially from zero and never reused. The Active flag is written once at
// creation and never cleared; expiry is derived against EndTime at read time.
type Poll struct {
	PollID     uint64
	Title      string
	Creator    string
	StartTime  time.Time
	EndTime    time.Time
	Active     bool
	Candidates []Candidate
	Ballots    map[string]bool
	TotalVotes uint64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ActiveAt reports the derived status: stored flag AND EndTime not yet passed.
// The end boundary itself still counts as active.
func (p Poll) ActiveAt(now time.Time) bool {
	return p.Active && !now.After(p.EndTime)
}

// HasVoted reports whether the voter already cast a ballot in this poll.
func (p Poll) HasVoted(voterID string) bool {
	return p.Ballots[voterID]
}

// Clone returns a deep copy so stored state is never aliased by callers.
func (p Poll) Clone() Poll {
	out := p
	out.Candidates = make([]Candidate, len(p.Candidates))
	copy(out.Candidates, p.Candidates)
	out.Ballots = make(map[string]bool, len(p.Ballots))
	for voter, cast := range p.Ballots {
		out.Ballots[voter] = cast
	}
	return out
}

// PollResults is the tally projection in candidate-insertion order.
type PollResults struct {
	PollID         uint64
	CandidateNames []string
	VoteCounts     []uint64
	TotalVotes     uint64
	Winner         string
}

// PollInfo is the metadata projection. StoredActive is the raw flag as
// persisted; DerivedActive additionally accounts for time-based expiry.
type PollInfo struct {
	PollID         uint64
	Title          string
	Creator        string
	StartTime      time.Time
	EndTime        time.Time
	StoredActive   bool
	DerivedActive  bool
	CandidateCount int
}
