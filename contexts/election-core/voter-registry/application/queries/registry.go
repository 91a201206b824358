package queries

import (
	"context"
	"strings"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/ports"
)

// LookupUseCase serves eligibility reads. Lookups never fail on unknown
// identities; they simply report false.
type LookupUseCase struct {
	Voters ports.VoterRepository
}

func (uc LookupUseCase) IsRegistered(ctx context.Context, voterID string) (bool, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return false, nil
	}
	_, found, err := uc.Voters.GetVoter(ctx, voterID)
	if err != nil {
		return false, err
	}
	return found, nil
}
