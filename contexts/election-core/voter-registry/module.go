package voterregistry

import (
	"log/slog"
	"sync"

	httpadapter "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/adapters/http"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/adapters/memory"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/application/commands"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/application/queries"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Lookups queries.LookupUseCase
	Store   *memory.Store
}

type Dependencies struct {
	AdminID string
	Voters  ports.VoterRepository
	Audit   ports.AuditLog
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	gate := &sync.Mutex{}
	registryUseCase := commands.RegistryUseCase{
		AdminID: deps.AdminID,
		Voters:  deps.Voters,
		Audit:   deps.Audit,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Gate:    gate,
		Logger:  deps.Logger,
	}
	lookupUseCase := queries.LookupUseCase{
		Voters: deps.Voters,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: registryUseCase,
			Lookups:  lookupUseCase,
			Logger:   deps.Logger,
		},
		Lookups: lookupUseCase,
	}
}

func NewInMemoryModule(adminID string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		AdminID: adminID,
		Voters:  store,
		Audit:   store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
