package postmark

import (
	"context"
	"encoding/json"
	"net"
	"net/smtp"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/internal/utils"
)

const messageStreamHeader = "X-PM-Message-Stream"

type Provider struct {
	sender      enmime.Sender
	fromName    string
	fromAddress string
	stream      string
	log         logger.Logger
}

// NewProvider sends through Postmark's SMTP relay.
func NewProvider(smtpCfg *config.SMTPConfig, appCfg *config.AppConfig, log logger.Logger) interfaces.EmailProvider {
	auth := smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	sender := enmime.NewSMTP(net.JoinHostPort(smtpCfg.Host, smtpCfg.Port), auth)
	return NewProviderWithSender(sender, appCfg.SupportName, appCfg.SupportEmail, log)
}

func NewProviderWithSender(sender enmime.Sender, fromName, fromAddress string, log logger.Logger) *Provider {
	return &Provider{
		sender:      sender,
		fromName:    fromName,
		fromAddress: fromAddress,
		stream:      "outbound",
		log:         log,
	}
}

func (p *Provider) ParseIncoming(payload []byte) (*dto.EmailMessage, error) {
	var data inboundEmailData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, errors.Wrap(err, "invalid postmark payload")
	}

	msg := &dto.EmailMessage{
		From:        data.From,
		FromName:    data.FromName,
		Subject:     data.Subject,
		Body:        data.TextBody,
		MessageID:   utils.NormalizeMessageID(data.messageID()),
		Attachments: make([]dto.RawAttachment, 0, len(data.Attachments)),
	}
	if strings.TrimSpace(msg.Body) == "" {
		msg.Body = data.HtmlBody
	}
	for _, a := range data.Attachments {
		msg.Attachments = append(msg.Attachments, dto.RawAttachment{
			Name:        a.Name,
			Content:     a.Content,
			ContentType: a.ContentType,
		})
	}

	msg.ExtractTicketReference()
	return msg, nil
}

func (p *Provider) SendNotification(ctx context.Context, to, subject, body string) bool {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PostmarkProvider.SendNotification")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("email.to", to)

	err := enmime.Builder().
		From(p.fromName, p.fromAddress).
		To("", to).
		Subject(subject).
		Text([]byte(body)).
		Header(messageStreamHeader, p.stream).
		Send(p.sender)
	if err != nil {
		tracing.TraceErr(span, err)
		p.log.Errorf("failed to send notification to %s: %v", to, err)
		return false
	}
	return true
}
