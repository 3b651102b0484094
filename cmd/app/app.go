package app

import (
	"log"

	"gghubblog/internal/cache"
	"gghubblog/internal/config"
	"gghubblog/internal/database"
	"gghubblog/internal/repository"
	"gghubblog/internal/service"
	"gghubblog/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service, cache.Cache) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// кеш опционален: без REDIS_ADDR сервис работает напрямую с БД
	var postsCache cache.Cache
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать Redis: %v", err)
	}
	if redisCache != nil {
		postsCache = redisCache
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, services, postsCache
}
