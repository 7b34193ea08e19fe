package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooking/services/logger"

	"github.com/robfig/cron/v3"
)

type stubPurger struct {
	calls    int
	n        int
	err      error
	deadline bool
}

func (p *stubPurger) PurgeOrphans(ctx context.Context) (int, error) {
	p.calls++
	_, p.deadline = ctx.Deadline()
	return p.n, p.err
}

func TestSweepOrphans(t *testing.T) {
	p := &stubPurger{n: 3}
	SweepOrphans(context.Background(), p, time.Second, logger.Nop{})
	if p.calls != 1 {
		t.Fatalf("purge called %d times", p.calls)
	}
	if !p.deadline {
		t.Fatal("sweep ran without a deadline")
	}

	failing := &stubPurger{err: errors.New("db down")}
	SweepOrphans(context.Background(), failing, time.Second, logger.Nop{})
	if failing.calls != 1 {
		t.Fatalf("purge called %d times", failing.calls)
	}
}

func TestInitCronJobsRejectsBadSpec(t *testing.T) {
	c := cron.New()
	if err := InitCronJobs(c, "not a schedule", &stubPurger{}, nil); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestInitCronJobsSchedulesSweep(t *testing.T) {
	c := cron.New()
	if err := InitCronJobs(c, "", &stubPurger{}, nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer c.Stop()
	if n := len(c.Entries()); n != 1 {
		t.Fatalf("%d cron entries, want 1", n)
	}
}
