package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/config"
	"github.com/spec-kit/tramites-portal/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTramiteCreated, n.handleTramiteCreated)
	n.dispatcher.Subscribe(events.EventTramiteStatusChanged, n.handleTramiteStatusChanged)
	n.dispatcher.Subscribe(events.EventSessionStarted, n.handleSessionEvent)
	n.dispatcher.Subscribe(events.EventSessionEnded, n.handleSessionEvent)
}

func (n *NotificationService) handleTramiteCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TramiteCreated", zap.String("uid", event.UID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTramiteStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TramiteStatusChanged", zap.String("uid", event.UID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSessionEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("SessionEvent",
		zap.String("event_type", string(event.Type)),
		zap.String("uid", event.UID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
