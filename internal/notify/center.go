package notify

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/scentshop/pkg/enums"
	"github.com/angelmondragon/scentshop/pkg/logger"
	"github.com/angelmondragon/scentshop/pkg/metrics"
	"github.com/google/uuid"
)

const (
	DefaultTTL      = 4 * time.Second
	DefaultCapacity = 20
)

// Notification is a short-lived user-visible message.
type Notification struct {
	ID        uuid.UUID               `json:"id"`
	Level     enums.NotificationLevel `json:"level"`
	Message   string                  `json:"message"`
	CreatedAt time.Time               `json:"created_at"`
	ExpiresAt time.Time               `json:"expires_at"`
}

// Notifier delivers transient success and failure messages.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Options configures a Center.
type Options struct {
	TTL      time.Duration
	Capacity int
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Clock    func() time.Time
}

// Center buffers recent notifications until they expire or are drained.
type Center struct {
	mu       sync.Mutex
	entries  []Notification
	ttl      time.Duration
	capacity int
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time
}

var _ Notifier = (*Center)(nil)

// NewCenter builds a notification center, filling unset options with defaults.
func NewCenter(opts Options) *Center {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Center{
		ttl:      opts.TTL,
		capacity: opts.Capacity,
		logg:     opts.Logger,
		metrics:  opts.Metrics,
		now:      opts.Clock,
	}
}

func (c *Center) Success(ctx context.Context, msg string) {
	c.push(ctx, enums.NotificationLevelSuccess, msg)
}

func (c *Center) Error(ctx context.Context, msg string) {
	c.push(ctx, enums.NotificationLevelError, msg)
}

func (c *Center) push(ctx context.Context, level enums.NotificationLevel, msg string) {
	now := c.now()
	n := Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   msg,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.entries = append(c.pruneLocked(now), n)
	if over := len(c.entries) - c.capacity; over > 0 {
		c.entries = append([]Notification(nil), c.entries[over:]...)
	}
	c.mu.Unlock()

	c.metrics.IncNotification(level.String())
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"notification_id":    n.ID.String(),
		"notification_level": level.String(),
	})
	if level == enums.NotificationLevelError {
		c.logg.Warn(logCtx, "notification: "+msg)
		return
	}
	c.logg.Info(logCtx, "notification: "+msg)
}

// Active lists unexpired notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = c.pruneLocked(c.now())
	return append([]Notification(nil), c.entries...)
}

// Drain returns the unexpired notifications and clears the buffer.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pruneLocked(c.now())
	c.entries = nil
	if out == nil {
		return []Notification{}
	}
	return append([]Notification(nil), out...)
}

func (c *Center) pruneLocked(now time.Time) []Notification {
	kept := c.entries[:0]
	for _, n := range c.entries {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	return kept
}
