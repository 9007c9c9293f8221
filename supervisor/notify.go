package supervisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// escalate notifies the human operator, once, that automatic recovery has
// given up. Notification failures are logged but not retried; the loop is
// stopping either way.
func (l *Loop) escalate(ctx context.Context, cause error) {
	if l.Operator != "" {
		body := fmt.Sprintf("The moderation bot has stopped after repeated crashes and needs a manual restart.\n\nLast error: %s", cause)
		if err := l.Gateway.SendMessage(ctx, l.Operator, "mastereditor has crashed", body); err != nil {
			l.Logger.Error("failed to notify operator", "err", err, "operator", l.Operator)
		}
	}
	if l.SlackWebhookURL != "" {
		msg := fmt.Sprintf("mastereditor stopped after repeated crashes: %s", cause)
		if err := l.sendSlackMsg(ctx, msg); err != nil {
			l.Logger.Error("failed to send slack notification", "err", err)
		}
	}
}

type slackWebhookBody struct {
	Text string `json:"text"`
}

// Sends a simple slack message to a channel via "incoming webhook".
//
// The slack incoming webhook must be already configured in the slack workplace.
func (l *Loop) sendSlackMsg(ctx context.Context, msg string) error {
	body, err := json.Marshal(slackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.SlackWebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	io.Copy(buf, resp.Body)
	if resp.StatusCode != 200 || buf.String() != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}
