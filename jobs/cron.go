package jobs

import (
	"context"
	"time"

	"hotelbooking/services/logger"

	"github.com/robfig/cron/v3"
)

const DefaultOrphanSweepSpec = "0 * * * *"

// OrphanPurger định nghĩa interface cho việc dọn các booking mồ côi
type OrphanPurger interface {
	PurgeOrphans(ctx context.Context) (int, error)
}

// SweepOrphans runs one purge pass bounded by timeout.
func SweepOrphans(ctx context.Context, purger OrphanPurger, timeout time.Duration, log logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	n, err := purger.PurgeOrphans(ctx)
	if err != nil {
		log.Error("orphan sweep failed after purging %d bookings: %v", n, err)
		return
	}
	log.Info("orphan sweep purged %d bookings in %s", n, time.Since(start))
}

// InitCronJobs khởi tạo các cron jobs và start scheduler
func InitCronJobs(c *cron.Cron, spec string, purger OrphanPurger, log logger.Logger) error {
	if spec == "" {
		spec = DefaultOrphanSweepSpec
	}
	if log == nil {
		log = logger.Nop{}
	}
	_, err := c.AddFunc(spec, func() {
		SweepOrphans(context.Background(), purger, time.Minute, log)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized (orphan sweep %q)", spec)
	return nil
}
