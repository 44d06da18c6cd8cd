package bootstrap

import (
	tickInfra "github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
	"github.com/simx-exchange/market-feed-service/internal/infrastructure/redis/snapshot"
)

// Repository holds the recorder's storage repositories.
type Repository struct {
	TickRepository     tickInfra.TickRepository
	SnapshotRepository snapshot.SnapshotRepository
}

// registerRepository registers the repositories.
func (b *Bootstrap) registerRepository() {
	b.Repository.TickRepository = tickInfra.NewRepository(b.QuestDB)
	b.Repository.SnapshotRepository = snapshot.NewRepository(b.Redis, b.Logger)
}
