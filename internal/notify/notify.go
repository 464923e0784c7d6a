package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/forgeworks/agent-hooks/internal/logging"
)

// Publisher delivers chain-completion notifications to an external
// event bus. Publishing is fire-and-forget: implementations log
// delivery failures and never surface them to the caller.
type Publisher interface {
	Publish(topic string, payload any)
}

// LogPublisher records notifications on the diagnostic log. It is the
// default bus when no external delivery is configured.
type LogPublisher struct {
	log *logrus.Entry
}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{log: logging.NewLogger("notify.log")}
}

func (p *LogPublisher) Publish(topic string, payload any) {
	p.log.WithField("topic", topic).Debug("Notification published")
}

// NtfyPublisher posts notifications to an ntfy server. The publish
// topic becomes the message title; the configured ntfy topic selects
// the channel.
type NtfyPublisher struct {
	url    string
	topic  string
	client *http.Client
	log    *logrus.Entry
}

func NewNtfyPublisher(url, topic string) *NtfyPublisher {
	return &NtfyPublisher{
		url:    url,
		topic:  topic,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logging.NewLogger("notify.ntfy"),
	}
}

func (p *NtfyPublisher) Publish(topic string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.WithField("error", err.Error()).Warn("Failed to marshal notification payload")
		return
	}

	endpoint := fmt.Sprintf("%s/%s", p.url, p.topic)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		p.log.WithField("error", err.Error()).Warn("Failed to build notification request")
		return
	}
	req.Header.Set("Title", topic)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"topic": topic,
			"error": err.Error(),
		}).Warn("Failed to publish notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		p.log.WithFields(logrus.Fields{
			"topic":  topic,
			"status": resp.StatusCode,
		}).Warn("Notification rejected by server")
	}
}
