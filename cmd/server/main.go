package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-study-space/internal/config"
	"github.com/iliyamo/library-study-space/internal/handler"
	"github.com/iliyamo/library-study-space/internal/middleware"
	"github.com/iliyamo/library-study-space/internal/queue"
	"github.com/iliyamo/library-study-space/internal/router"
	"github.com/iliyamo/library-study-space/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	lib, err := service.New(cfg, rng)
	if err != nil {
		log.Fatalf("init library state: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := service.NewScheduler(service.RealClock{})
	if cfg.SimulationEnabled {
		sim := service.NewSimulator(lib, cfg.WalkAwayProb, cfg.WalkInProb, rand.New(rand.NewSource(seed+1)))
		sched.Subscribe("simulation", cfg.SimulationInterval, sim.Tick)
	}
	sched.Subscribe("session-refresh", cfg.RefreshInterval, func(now time.Time) {
		for _, ses := range lib.ExpiredSessions(now) {
			log.Printf("session %s on seat %s expired (holder %s)", ses.ID, ses.SeatID, ses.HolderID)
		}
	})
	go sched.Run(ctx, time.Second)

	if cfg.EventsEnabled {
		go func() {
			if err := queue.StartSessionConsumer(); err != nil {
				log.Printf("session consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	} else {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	authHandler := handler.NewAuthHandler(cfg, lib)
	studentHandler := handler.NewStudentHandler(lib)
	staffHandler := handler.NewStaffHandler(lib)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterStudent(e, studentHandler, cfg.JWTSecret)
	router.RegisterStaff(e, staffHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, seed=%d)", addr, cfg.Env, seed)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}
}
