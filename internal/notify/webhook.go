// Package notify forwards newly inserted comments to external services.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/admin-edit-comment/internal/metrics"
	"github.com/admin-edit-comment/internal/models"
	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
	"github.com/rs/zerolog"
)

const title = "New edit comment"

// Sender delivers a message to every configured service
type Sender interface {
	Send(message string, params *stypes.Params) []error
}

// Webhook sends a message for each inserted comment. Delivery runs in the
// background and failures are only logged.
type Webhook struct {
	sender  Sender
	metrics *metrics.Metrics
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewWebhook builds a Webhook from shoutrrr service URLs
func NewWebhook(urls []string, timeout time.Duration, logger zerolog.Logger) (*Webhook, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one notification URL is required")
	}

	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		// the raw error may echo credentials embedded in the URL
		return nil, fmt.Errorf("invalid notification URL: %s", redact(err.Error(), urls))
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	return NewWebhookWithSender(sender, logger), nil
}

// NewWebhookWithSender wraps an existing sender
func NewWebhookWithSender(sender Sender, logger zerolog.Logger) *Webhook {
	return &Webhook{
		sender: sender,
		log:    logger.With().Str("component", "notify").Logger(),
	}
}

// WithMetrics records delivery outcomes on m
func (w *Webhook) WithMetrics(m *metrics.Metrics) *Webhook {
	w.metrics = m
	return w
}

// Handle queues a notification for a freshly inserted comment
func (w *Webhook) Handle(ctx context.Context, parentID int64, author *models.User, commentID int64) {
	msg := Message(parentID, author, commentID)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		params := stypes.Params{}
		params.SetTitle(title)
		delivered := true
		for _, err := range w.sender.Send(msg, &params) {
			if err != nil {
				delivered = false
				w.log.Warn().Err(err).
					Int64("parent_id", parentID).
					Int64("comment_id", commentID).
					Msg("Failed to send comment notification")
			}
		}
		w.metrics.RecordNotification(delivered)
	}()
}

// Close waits for pending notifications until ctx is done
func (w *Webhook) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Message formats the notification text
func Message(parentID int64, author *models.User, commentID int64) string {
	name := "unknown user"
	if author != nil {
		switch {
		case author.DisplayName != "":
			name = author.DisplayName
		case author.Login != "":
			name = author.Login
		}
	}
	return fmt.Sprintf("%s commented on content item #%d (comment #%d)", name, parentID, commentID)
}

func redact(s string, urls []string) string {
	for _, u := range urls {
		s = strings.ReplaceAll(s, u, "[redacted]")
	}
	return s
}
