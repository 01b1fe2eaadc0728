package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// SendFunc has the signature of smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPConfig describes the relay and the sending mailbox.
type SMTPConfig struct {
	Addr     string
	Username string
	Password string
	From     string
}

// SMTPNotifier implements ports.Notifier by mailing the current approvers.
// Recipients are looked up per event, so role changes apply without a restart.
type SMTPNotifier struct {
	cfg       SMTPConfig
	approvers ports.ApproverDirectory
	auth      smtp.Auth
	send      SendFunc
	logger    *slog.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, approvers ports.ApproverDirectory, logger *slog.Logger) (*SMTPNotifier, error) {
	return NewSMTPNotifierWithSender(cfg, approvers, smtp.SendMail, logger)
}

func NewSMTPNotifierWithSender(
	cfg SMTPConfig,
	approvers ports.ApproverDirectory,
	send SendFunc,
	logger *slog.Logger,
) (*SMTPNotifier, error) {
	if cfg.Addr == "" {
		return nil, errs.NewValueIsRequiredError("smtp address")
	}
	if cfg.From == "" {
		return nil, errs.NewValueIsRequiredError("smtp sender")
	}
	if approvers == nil {
		return nil, errs.NewValueIsRequiredError("approver directory")
	}

	n := &SMTPNotifier{
		cfg:       cfg,
		approvers: approvers,
		send:      send,
		logger:    logger.With("component", "smtp_notifier"),
	}
	if cfg.Username != "" {
		host, _, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("smtp address", err)
		}
		n.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return n, nil
}

// NotifyOrderCreated sends one message to all approvers. Without approvers
// nothing is sent and the event counts as handled. net/smtp takes no context,
// so cancellation is only honoured before the dial.
func (n *SMTPNotifier) NotifyOrderCreated(ctx context.Context, event order.CreatedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipients, err := n.approvers.ApproverEmails(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		n.logger.WarnContext(ctx, "No approvers found, no e-mail sent", "order_number", event.OrderNumber)
		return nil
	}

	n.logger.InfoContext(ctx, "Notifying approvers",
		"order_number", event.OrderNumber, "recipients", len(recipients))
	if err = n.send(n.cfg.Addr, n.auth, n.cfg.From, recipients, n.message(event, recipients)); err != nil {
		return errs.NewDependencyUnavailableError("smtp relay "+n.cfg.Addr, err)
	}
	return nil
}

func (n *SMTPNotifier) message(event order.CreatedEvent, recipients []string) []byte {
	var b bytes.Buffer
	subject := fmt.Sprintf("New order %s: %s", event.OrderNumber, event.Title)

	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", event.OccurredAt.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@procurement>\r\n", event.EventID.String())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Order %s was created and is waiting for review.\r\n\r\n", event.OrderNumber)
	fmt.Fprintf(&b, "Title: %s\r\n", event.Title)
	fmt.Fprintf(&b, "Requester: %d\r\n", event.RequesterID)
	fmt.Fprintf(&b, "Priority: %s\r\n", event.Priority)
	fmt.Fprintf(&b, "Items: %d\r\n", event.ItemCount)
	if event.EstimatedAmount != nil {
		fmt.Fprintf(&b, "Estimated amount: %s %s\r\n", event.EstimatedAmount.StringFixed(2), event.Currency)
	}
	return b.Bytes()
}
