package ballotengine

import (
	"log/slog"
	"sync"

	httpadapter "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/adapters/http"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/adapters/memory"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application/commands"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application/queries"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Polls    ports.PollRepository
	Registry ports.Registry
	Audit    ports.AuditLog
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// NewModule wires the use cases. Each module instance carries its own write
// gate, so independent instances can coexist in tests without sharing state.
func NewModule(deps Dependencies) Module {
	gate := &sync.Mutex{}
	ballotUseCase := commands.BallotUseCase{
		Polls:    deps.Polls,
		Registry: deps.Registry,
		Audit:    deps.Audit,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Gate:     gate,
		Logger:   deps.Logger,
	}
	tallyUseCase := queries.TallyUseCase{
		Polls: deps.Polls,
		Clock: deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ballots: ballotUseCase,
			Tallies: tallyUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Poll, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Polls:    store,
		Registry: store,
		Audit:    store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
