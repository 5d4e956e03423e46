package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/adityarahman/gighub_be/internal/app"
	"github.com/adityarahman/gighub_be/internal/config"
	"github.com/adityarahman/gighub_be/internal/db"
	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var stores store.Stores
	switch cfg.StoreDriver {
	case "memory":
		stores = store.NewMemoryStores()
		log.Println("store: in-memory driver")
	default:
		gdb, err := db.Connect(cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		if err := gdb.AutoMigrate(
			&models.User{},
			&models.Service{},
			&models.Job{},
			&models.Application{},
			&models.Order{},
			&models.Review{},
			&models.WalletTransaction{},
		); err != nil {
			log.Fatal(err)
		}
		stores = store.NewGormStores(gdb)
		log.Println("store: gorm driver")
	}

	hub := realtime.NewHub()
	go hub.Run()

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, notifications stay local: %v", err)
		rdb = nil
	}

	notifier := realtime.NewNotifier(hub, rdb)
	go notifier.Subscribe(context.Background())

	a := app.New(cfg, stores, hub, notifier)
	log.Fatal(a.Listen(":" + cfg.AppPort))
}
