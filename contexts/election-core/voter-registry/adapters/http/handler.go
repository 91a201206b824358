package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/application/commands"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/application/queries"
	httptransport "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/transport/http"
)

type Handler struct {
	Registry commands.RegistryUseCase
	Lookups  queries.LookupUseCase
	Logger   *slog.Logger
}

func (h Handler) RegisterVoterHandler(
	ctx context.Context,
	adminID string,
	req httptransport.RegisterVoterRequest,
) (httptransport.VoterResponse, error) {
	result, err := h.Registry.RegisterVoter(ctx, commands.RegisterVoterCommand{
		AdminID: adminID,
		VoterID: req.VoterID,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return httptransport.VoterResponse{
		VoterID:      result.Voter.VoterID,
		RegisteredBy: result.Voter.RegisteredBy,
		RegisteredAt: result.Voter.RegisteredAt,
	}, nil
}

func (h Handler) IsRegisteredHandler(ctx context.Context, voterID string) (httptransport.IsRegisteredResponse, error) {
	registered, err := h.Lookups.IsRegistered(ctx, voterID)
	if err != nil {
		return httptransport.IsRegisteredResponse{}, err
	}
	return httptransport.IsRegisteredResponse{
		VoterID:    voterID,
		Registered: registered,
	}, nil
}
