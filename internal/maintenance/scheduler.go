package maintenance

import (
	"context"
	"log"

	"github.com/clusterkv/go-cache-gateway/internal/cache/service"
	"github.com/robfig/cron/v3"
)

// Scheduler periodically re-validates every known store so unreachable or
// destroying stores show up in the logs before traffic hits them.
type Scheduler struct {
	cacheService *service.CacheService
	cron         *cron.Cron
}

func NewScheduler(cacheService *service.CacheService) *Scheduler {
	return &Scheduler{cacheService: cacheService}
}

// Start initializes the cron tasks. Every 5 minutes, at second 0.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 */5 * * * *", func() {
		s.validateStores()
	})
	if err != nil {
		log.Printf("Failed to create validation cron job: %v", err)
		return
	}

	log.Println("Maintenance scheduler started (store validation every 5 minutes)")
	c.Start()
	s.cron = c
}

// Stop halts the scheduler, waiting for a running sweep to finish
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) validateStores() {
	ctx := context.Background()

	stores, err := s.cacheService.ListStores(ctx)
	if err != nil {
		log.Printf("[maintenance] failed to list stores: %v", err)
		return
	}

	for _, name := range stores {
		if err := s.cacheService.ValidateStore(ctx, name); err != nil {
			log.Printf("[maintenance] store %q failed validation: %v", name, err)
		}
	}

	log.Printf("[maintenance] validated %d store(s)", len(stores))
}
