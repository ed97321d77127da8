package services

import (
	"context"
	"fmt"
	"net/http"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
	"time"
)

const (
	TargetRename = "rename"
	TargetStatus = "status"
	TargetLog    = "log"
	TargetUpload = "upload"
)

// NotificationResult is the outcome of one outbound call. Status is 0 when no
// response was received.
type NotificationResult struct {
	Target string
	Status int
	Err    error
}

func (r NotificationResult) OK() bool {
	return r.Err == nil && r.Status == http.StatusOK
}

type NotifierServiceInterface interface {
	RenameChannel(ctx context.Context, name string) NotificationResult
	PostStatus(ctx context.Context, message string) NotificationResult
	PostLog(ctx context.Context, at time.Time, rank int) NotificationResult
	// Upload sends files to the history channel and optionally pins the message.
	Upload(ctx context.Context, content string, pin bool, paths ...string) error
}

type NotifierService struct {
	conf    *structures.Config
	chat    providers.ChatProviderInterface
	webhook providers.WebhookProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewNotifierService(conf *structures.Config, chat providers.ChatProviderInterface, webhook providers.WebhookProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) NotifierServiceInterface {
	return &NotifierService{
		conf:    conf,
		chat:    chat,
		webhook: webhook,
		metrics: metrics,
		logger:  logger,
	}
}

func (ns *NotifierService) RenameChannel(ctx context.Context, name string) NotificationResult {
	status, err := ns.chat.RenameChannel(ctx, ns.conf.Discord.ChannelID, name)
	return ns.report(NotificationResult{Target: TargetRename, Status: status, Err: err})
}

func (ns *NotifierService) PostStatus(ctx context.Context, message string) NotificationResult {
	status, err := ns.webhook.Post(ctx, ns.conf.Discord.ChatWebhookURL, message)
	return ns.report(NotificationResult{Target: TargetStatus, Status: status, Err: err})
}

func (ns *NotifierService) PostLog(ctx context.Context, at time.Time, rank int) NotificationResult {
	status, err := ns.webhook.Post(ctx, ns.conf.Discord.LogWebhookURL, models.FormatLogLine(at, rank))
	return ns.report(NotificationResult{Target: TargetLog, Status: status, Err: err})
}

func (ns *NotifierService) report(res NotificationResult) NotificationResult {
	ns.metrics.IncNotifications(res.Target, res.Status)
	switch {
	case res.Err != nil:
		ns.logger.Errorf(providers.TypeNotify, "%s failed (status %d): %s", res.Target, res.Status, res.Err)
	case res.Status != http.StatusOK:
		ns.logger.Errorf(providers.TypeNotify, "%s failed with status %d", res.Target, res.Status)
	default:
		ns.logger.Infof(providers.TypeNotify, "%s succeeded", res.Target)
	}
	return res
}

func (ns *NotifierService) Upload(ctx context.Context, content string, pin bool, paths ...string) error {
	channel := ns.conf.HistoryChannel()
	id, err := ns.chat.SendFiles(ctx, channel, content, paths...)
	if err != nil {
		ns.metrics.IncNotifications(TargetUpload, 0)
		return fmt.Errorf("upload: %w", err)
	}
	ns.metrics.IncNotifications(TargetUpload, http.StatusOK)
	ns.logger.Infof(providers.TypeNotify, "Uploaded %d file(s) to %s as message %s", len(paths), channel, id)

	if pin {
		if err := ns.chat.Pin(ctx, channel, id); err != nil {
			return fmt.Errorf("pin %s: %w", id, err)
		}
		ns.logger.Infof(providers.TypeNotify, "Pinned message %s", id)
	}
	return nil
}
