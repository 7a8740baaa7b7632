package app

import (
	"github.com/planpoker/core/internal/config"
	http_health "github.com/planpoker/core/internal/delivery/http/health"
	http_init "github.com/planpoker/core/internal/delivery/http/init"
	http_room "github.com/planpoker/core/internal/delivery/http/room"
	http_voting "github.com/planpoker/core/internal/delivery/http/voting"
	infra_redis_init "github.com/planpoker/core/internal/infra/redis/init"
	infra_redis_room "github.com/planpoker/core/internal/infra/redis/room"
	storage_room "github.com/planpoker/core/internal/storage/room"
	usecase_room "github.com/planpoker/core/internal/usecase/room"
)

func Go(cfg *config.Config) {
	const roomKeyPrefix = "room"

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)

	roomCache := infra_redis_room.New(redisConn, roomKeyPrefix)
	roomStorage := storage_room.New(roomCache, cfg.Room.TTL)
	roomUC := usecase_room.New(roomStorage)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_health.New(roomCache))
	controllerPool.Add(http_room.New(roomUC))
	controllerPool.Add(http_voting.New(roomUC))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
