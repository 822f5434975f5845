// Command sweeper periodically expires subscriptions whose end date has
// passed, moving them from ACTIVE to INACTIVE. Renewal billing is owned by
// the orchestration layer; this only advances the state machine.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servio/internal/config"
	"servio/internal/repositories"
	"servio/internal/services/subscription"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}
	defer repositories.CloseDB()

	svc := subscription.NewService(
		repositories.NewSubscriptionRepository(repositories.DB),
		repositories.NewPlanRepository(repositories.DB),
	)

	interval := config.GetDurationEnv("SWEEP_INTERVAL", 5*time.Minute)
	lookback := config.GetDurationEnv("SWEEP_LOOKBACK", 24*time.Hour)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("sweeper running every %s", interval)
	sweep(svc, lookback)
	for {
		select {
		case <-ticker.C:
			sweep(svc, lookback)
		case <-stop:
			log.Println("sweeper stopped")
			return
		}
	}
}

func sweep(svc subscription.Service, lookback time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	subs, err := svc.FindEndingBetween(ctx, now.Add(-lookback), now)
	if err != nil {
		log.Printf("sweep failed: %v", err)
		return
	}

	expired := 0
	for _, sub := range subs {
		switch err := svc.MarkExpired(ctx, sub.ID); err {
		case nil:
			expired++
		case subscription.ErrSubscriptionNotActive:
			// already cancelled or expired by an earlier sweep
		default:
			log.Printf("failed to expire subscription %d: %v", sub.ID, err)
		}
	}
	if expired > 0 {
		log.Printf("expired %d subscription(s)", expired)
	}
}
