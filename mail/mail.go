// Package mail delivers the post-submission thank-you message. Delivery
// is best effort: a failed send is reported in the Result and never
// escalated, the recorded response is already committed by the time a
// dispatcher runs.
package mail

import (
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/jordan-wright/email"

	"github.com/penguince/career-survey/config"
	"github.com/penguince/career-survey/log"
)

const (
	defaultSurveyTitle = "Career Readiness Survey"
	poolConnections    = 4
)

type Result struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

type Sender interface {
	SendThankYou(name, address, surveyTitle string) Result
}

type smtpSender struct {
	pool    *email.Pool
	from    string
	ref     string
	timeout time.Duration
}

// New builds a Sender from the mail configuration. Missing credentials or
// an unreachable pool yield a disabled sender rather than an error: the
// service must keep recording responses without a mail relay.
func New(cfg config.MailConfig, ref string) Sender {
	if !cfg.Credentialed() {
		log.Warn("mail: no credentials configured, notifications disabled")
		return disabledSender{}
	}

	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	pool, err := email.NewPool(
		net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		poolConnections,
		auth,
		&tls.Config{ServerName: cfg.Host},
	)
	if err != nil {
		log.Errorf("mail.pool: %s", err)
		return disabledSender{}
	}

	return &smtpSender{
		pool:    pool,
		from:    cfg.From,
		ref:     ref,
		timeout: cfg.SendTimeout,
	}
}

func (s *smtpSender) SendThankYou(name, address, surveyTitle string) Result {
	if surveyTitle == "" {
		surveyTitle = defaultSurveyTitle
	}

	now := time.Now().UTC()
	body, err := renderThankYou(thankYouData{
		Name:        name,
		SurveyTitle: surveyTitle,
		Date:        now.Format("January 2, 2006"),
		Timestamp:   now.Format(time.RFC3339),
		Ref:         s.ref,
	})
	if err != nil {
		log.Errorf("mail.render: %s", err)
		return Result{Success: false, Detail: err.Error()}
	}

	e := &email.Email{
		From:    s.from,
		To:      []string{address},
		Subject: "Thank You for Completing Our " + surveyTitle,
		HTML:    body,
	}
	err = s.pool.Send(e, s.timeout)
	if err != nil {
		log.Errorf("mail.send: %s", err)
		return Result{Success: false, Detail: err.Error()}
	}

	log.Debugf("mail.send: delivered to %s", address)
	return Result{Success: true}
}

type disabledSender struct{}

func (disabledSender) SendThankYou(name, address, surveyTitle string) Result {
	log.Debugf("mail.send: skipped for %s, delivery not configured", address)
	return Result{Success: false, Detail: "email delivery is not configured"}
}
