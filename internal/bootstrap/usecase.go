package bootstrap

import (
	tickDomain "github.com/simx-exchange/market-feed-service/internal/domain/tick"
	tickUc "github.com/simx-exchange/market-feed-service/internal/usecase/tick"
)

// Usecase holds the recorder's usecases.
type Usecase struct {
	TickUsecase tickDomain.Usecase
}

// registerUsecase registers the usecases.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.TickUsecase = tickUc.NewUsecase(b.Repository.TickRepository, b.Logger)
}
