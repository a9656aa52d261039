package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"revisio-backend/internal/models"
	"revisio-backend/internal/repository"
	"revisio-backend/internal/session"
)

// Pool drains finished-session result jobs into study_results. Results
// are enqueued by the session manager on DELETE; persistence is async so
// ending a session never waits on Postgres.
type Pool struct {
	redis       *redis.Client
	resultRepo  *repository.ResultRepo
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, resultRepo *repository.ResultRepo, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		resultRepo:  resultRepo,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}

	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, session.ResultQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.ResultJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse result job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("result_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: saving result %s (kind: %s)", id, job.ID, job.Kind)

		if err := p.saveResult(ctx, &job); err != nil {
			p.handleFailure(&job, err)
		} else {
			p.handleSuccess(ctx, &job)
		}

		// Release lock
		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) saveResult(ctx context.Context, job *models.ResultJob) error {
	res := &models.StudyResult{
		UserID:          job.UserID,
		ResourceID:      job.ResourceID,
		Kind:            job.Kind,
		Mode:            job.Mode,
		CorrectCount:    job.CorrectCount,
		IncorrectCount:  job.IncorrectCount,
		Mastered:        job.Mastered,
		Learning:        job.Learning,
		NotSeen:         job.NotSeen,
		Banned:          job.Banned,
		DurationSeconds: job.DurationSeconds,
	}

	if err := p.resultRepo.Create(ctx, res); err != nil {
		return fmt.Errorf("failed to save study result: %w", err)
	}

	return nil
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.ResultJob) {
	msg, err := json.Marshal(models.WSMessage{
		Type: "result_saved",
		Payload: map[string]interface{}{
			"result_id":   job.ID,
			"resource_id": job.ResourceID,
			"kind":        job.Kind,
		},
	})
	if err != nil {
		return
	}

	p.redis.Publish(ctx, "user_updates:"+job.UserID.String(), string(msg))

	log.Printf("Result %s saved", job.ID)
}

func (p *Pool) handleFailure(job *models.ResultJob, err error) {
	job.RetryCount++

	if job.RetryCount < 3 {
		// Re-queue with backoff
		log.Printf("Result %s failed (attempt %d): %v, retrying", job.ID, job.RetryCount, err)

		jobBytes, _ := json.Marshal(job)
		backoff := time.Duration(1<<uint(job.RetryCount)) * time.Second
		time.AfterFunc(backoff, func() {
			p.redis.LPush(context.Background(), session.ResultQueue, string(jobBytes))
		})
		return
	}

	// Max retries reached; the stats are gone but the session already
	// ended cleanly, so log and move on.
	log.Printf("Result %s failed permanently: %v", job.ID, err)
}
