// Package worker drains queued player progress pings into the store. The
// progress route only enqueues, so a slow or briefly unavailable database
// never blocks playback navigation.
package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
)

const ProgressQueue = "queue:player-progress"

type Pool struct {
	redis        *redis.Client
	progressRepo *repository.ProgressRepo
	workerCount  int
	stopChan     chan struct{}
}

func NewPool(redisClient *redis.Client, progressRepo *repository.ProgressRepo, workerCount int) *Pool {
	return &Pool{
		redis:        redisClient,
		progressRepo: progressRepo,
		workerCount:  workerCount,
		stopChan:     make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d progress worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Progress worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, ProgressQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var ping models.ProgressPing
		if err := json.Unmarshal([]byte(result[1]), &ping); err != nil {
			log.Printf("Progress worker %d: failed to parse ping: %v", id, err)
			continue
		}

		event := &models.ProgressEvent{
			PresentationID: ping.PresentationID,
			SlideNumber:    ping.SlideNumber,
			Completed:      ping.Completed,
			QuizResult:     ping.QuizResult,
		}
		if err := p.progressRepo.Create(ctx, event); err != nil {
			// Best-effort by contract: log and move on.
			log.Printf("Progress worker %d: failed to store event for %s: %v", id, ping.PresentationID, err)
		}
	}
}
