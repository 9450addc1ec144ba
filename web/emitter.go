package web

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// EmitterConfig sizes the asynchronous telemetry pipeline.
type EmitterConfig struct {
	// Queue is the Redis list events are pushed onto.
	Queue string
	// Workers is the number of goroutines draining the buffer.
	Workers int
	// Buffer is the channel capacity between Emit and the workers.
	Buffer int
	// PushTimeout bounds a single Redis push.
	PushTimeout time.Duration
	// HandoffTimeout is how long Emit waits for buffer space before
	// dropping the event. Zero means drop immediately.
	HandoffTimeout time.Duration
}

const (
	defaultQueue       = "taskboard:telemetry"
	defaultWorkers     = 2
	defaultBuffer      = 1024
	defaultPushTimeout = 5 * time.Second
)

// RedisEmitter forwards telemetry events to a Redis list as JSON, one
// entry per event. Handoff to the worker pool is non-blocking with a
// short grace period; when the buffer stays full the event is dropped
// so a slow sink never stalls request completion.
type RedisEmitter struct {
	cfg       EmitterConfig
	client    *redis.Client
	logger    *log.Logger
	events    chan Event
	workerWG  sync.WaitGroup
	closeOnce sync.Once
}

// NewRedisEmitter starts the worker pool. Close must be called on
// shutdown, after the HTTP server has stopped accepting requests.
func NewRedisEmitter(client *redis.Client, logger *log.Logger, cfg EmitterConfig) *RedisEmitter {
	if cfg.Queue == "" {
		cfg.Queue = defaultQueue
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = defaultPushTimeout
	}

	e := &RedisEmitter{
		cfg:    cfg,
		client: client,
		logger: logger,
		events: make(chan Event, cfg.Buffer),
	}
	for i := 0; i < cfg.Workers; i++ {
		e.workerWG.Add(1)
		go e.worker()
	}
	logger.Infof("telemetry emitter started, queue: %s, workers: %d, buffer: %d", cfg.Queue, cfg.Workers, cfg.Buffer)
	return e
}

func (e *RedisEmitter) worker() {
	defer e.workerWG.Done()
	for ev := range e.events {
		payload, err := sonic.Marshal(ev)
		if err != nil {
			e.logger.Errorf("telemetry encode failed: %v, request: %s", err, ev.RequestID)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.PushTimeout)
		err = e.client.RPush(ctx, e.cfg.Queue, payload).Err()
		cancel()
		if err != nil {
			e.logger.Errorf("telemetry push failed: %v, request: %s", err, ev.RequestID)
		}
	}
}

// Emit hands the event to the worker pool without blocking the request
// path. Events are dropped when the buffer stays full past the handoff
// timeout.
func (e *RedisEmitter) Emit(ev Event) {
	select {
	case e.events <- ev:
		return
	default:
	}

	if e.cfg.HandoffTimeout <= 0 {
		e.logger.Warnf("telemetry buffer saturated; dropping event, request: %s", ev.RequestID)
		return
	}

	timer := time.NewTimer(e.cfg.HandoffTimeout)
	defer timer.Stop()
	select {
	case e.events <- ev:
	case <-timer.C:
		e.logger.Warnf("telemetry buffer saturated; dropping event, request: %s", ev.RequestID)
	}
}

// Close drains buffered events and stops the workers.
func (e *RedisEmitter) Close() {
	e.closeOnce.Do(func() {
		close(e.events)
		e.workerWG.Wait()
	})
}
