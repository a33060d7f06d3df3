package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

// LifecycleSweeper advances reservations whose time has come
type LifecycleSweeper interface {
	SweepLifecycle(ctx context.Context, now time.Time) (confirmed, completed int, err error)
}

// CameraSweeper analyzes every active camera once
type CameraSweeper interface {
	SweepActive(ctx context.Context) (int, error)
}

type Config struct {
	LifecycleInterval time.Duration
	CameraInterval    time.Duration
	// CameraMonitor disables the camera sweep when false
	CameraMonitor bool
	// Timeout bounds a single run
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		LifecycleInterval: time.Minute,
		CameraInterval:    30 * time.Second,
		CameraMonitor:     true,
		Timeout:           20 * time.Second,
	}
}

// Processor schedules the background sweeps
type Processor struct {
	scheduler gocron.Scheduler
	lifecycle LifecycleSweeper
	cameras   CameraSweeper
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewProcessor builds the scheduler. A non-nil locker makes every run take a
// Redis lock, so only one instance sweeps at a time.
func NewProcessor(lifecycle LifecycleSweeper, cameras CameraSweeper, locker *cache.Locker, cfg Config, log *logger.Logger) (*Processor, error) {
	def := DefaultConfig()
	if cfg.LifecycleInterval <= 0 {
		cfg.LifecycleInterval = def.LifecycleInterval
	}
	if cfg.CameraInterval <= 0 {
		cfg.CameraInterval = def.CameraInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	var opts []gocron.SchedulerOption
	if locker != nil {
		opts = append(opts, gocron.WithDistributedLocker(&redisLocker{locker: locker, ttl: cfg.Timeout}))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	p := &Processor{
		scheduler: s,
		lifecycle: lifecycle,
		cameras:   cameras,
		cfg:       cfg,
		log:       log.WithComponent("jobs"),
		now:       time.Now,
	}

	if lifecycle != nil {
		if err := p.register("reservation-lifecycle", cfg.LifecycleInterval, p.RunLifecycle); err != nil {
			return nil, err
		}
	}
	if cameras != nil && cfg.CameraMonitor {
		if err := p.register("camera-monitor", cfg.CameraInterval, p.RunCameras); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Processor) register(name string, every time.Duration, run func(context.Context)) error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), p.cfg.Timeout)
			defer cancel()
			run(ctx)
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

func (p *Processor) Start() {
	p.scheduler.Start()
	p.log.Info("background jobs started",
		"lifecycle_interval", p.cfg.LifecycleInterval.String(),
		"camera_interval", p.cfg.CameraInterval.String(),
		"jobs", len(p.scheduler.Jobs()))
}

// Shutdown waits for running jobs to finish
func (p *Processor) Shutdown() error {
	if err := p.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	p.log.Info("background jobs stopped")
	return nil
}

// RunLifecycle performs one reservation lifecycle sweep
func (p *Processor) RunLifecycle(ctx context.Context) {
	confirmed, completed, err := p.lifecycle.SweepLifecycle(ctx, p.now())
	if err != nil {
		p.log.Error("reservation lifecycle sweep failed", "error", err)
		return
	}
	if confirmed > 0 || completed > 0 {
		p.log.Info("reservation lifecycle sweep", "confirmed", confirmed, "completed", completed)
	}
}

// RunCameras performs one camera monitor sweep
func (p *Processor) RunCameras(ctx context.Context) {
	analyzed, err := p.cameras.SweepActive(ctx)
	if err != nil {
		p.log.Error("camera sweep failed", "error", err)
		return
	}
	p.log.Debug("camera sweep", "analyzed", analyzed)
}

// Status describes the scheduled jobs
func (p *Processor) Status() map[string]interface{} {
	jobs := p.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return map[string]interface{}{
		"lifecycle_interval": p.cfg.LifecycleInterval.String(),
		"camera_interval":    p.cfg.CameraInterval.String(),
		"jobs":               names,
	}
}

// redisLocker adapts cache.Locker to gocron's distributed locker
type redisLocker struct {
	locker *cache.Locker
	ttl    time.Duration
}

func (l *redisLocker) Lock(ctx context.Context, key string) (gocron.Lock, error) {
	lock, err := l.locker.Acquire(ctx, "jobs:"+key, l.ttl)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			return nil, fmt.Errorf("job %s already running elsewhere: %w", key, err)
		}
		return nil, err
	}
	return redisLock{lock}, nil
}

type redisLock struct {
	lock *cache.Lock
}

func (l redisLock) Unlock(ctx context.Context) error {
	return l.lock.Release(ctx)
}
