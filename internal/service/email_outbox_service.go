package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"getscience-be/internal/pkg/logger"
	"getscience-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EmailJob is one queued outbound email. Template names select the
// mailer method; params feed its placeholders.
type EmailJob struct {
	Recipient string            `json:"recipient"`
	Template  string            `json:"template"`
	Params    map[string]string `json:"params"`
}

const (
	EmailTemplateVerification        = "verification_code"
	EmailTemplateApplicationDecision = "application_decision"
)

// IEmailOutbox decouples SMTP from the request path: services enqueue
// after commit, the worker sends. Failures are logged, never surfaced.
type IEmailOutbox interface {
	Enqueue(ctx context.Context, job EmailJob)
}

type emailOutbox struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewEmailOutbox(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IEmailOutbox {
	return &emailOutbox{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (o *emailOutbox) Enqueue(ctx context.Context, job EmailJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		o.logger.Error("EmailOutbox", "Failed to marshal email job", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := o.pubSub.Publish(o.topicName, msg); err != nil {
		o.logger.Error("EmailOutbox", "Failed to enqueue email job", map[string]interface{}{
			"error":     err.Error(),
			"recipient": job.Recipient,
		})
	}
}

type IEmailWorkerService interface {
	Consume(ctx context.Context) error
}

type emailWorkerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewEmailWorkerService(pubSub *gochannel.GoChannel, topicName string, emailService mailer.IEmailService, log logger.ILogger) IEmailWorkerService {
	return &emailWorkerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (w *emailWorkerService) Consume(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, w.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			w.processMessage(msg)
		}
	}()

	return nil
}

func (w *emailWorkerService) processMessage(msg *message.Message) {
	var job EmailJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		log.Printf("[ERROR] Failed to unmarshal email job: %v", err)
		msg.Ack() // malformed jobs would retry forever
		return
	}

	var err error
	switch job.Template {
	case EmailTemplateVerification:
		err = w.emailService.SendVerificationCode(job.Recipient, job.Params["code"])
	case EmailTemplateApplicationDecision:
		err = w.emailService.SendApplicationDecision(job.Recipient, job.Params["event_title"], job.Params["decision"])
	default:
		err = fmt.Errorf("unknown email template %q", job.Template)
	}

	if err != nil {
		w.logger.Error("EmailWorker", "Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"recipient": job.Recipient,
			"template":  job.Template,
		})
		// Fire and forget. Ack anyway; a stuck SMTP server must not
		// wedge the queue.
	}

	msg.Ack()
}
