package bootstrap

import (
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/questdb"
	"github.com/simx-exchange/market-feed-service/pkg/redis"
)

// Bootstrap wires the recorder's repositories and usecases over connected
// infrastructure clients.
type Bootstrap struct {
	Repository Repository
	Usecase    Usecase
	Logger     logger.Interface

	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// Config carries the connected clients the bootstrap wires together.
type Config struct {
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
	Logger  logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config Config) Bootstrap {
	b.QuestDB = config.QuestDB
	b.Redis = config.Redis
	b.Logger = config.Logger

	b.registerRepository()
	b.registerUsecase()

	return *b
}
