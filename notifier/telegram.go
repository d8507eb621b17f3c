package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Dispatcher delivers a message to a chat identity. Delivery is
// best-effort; callers treat a failure as recipient-local.
type Dispatcher interface {
	Send(chatID int64, text string) error
}

type telegramMessage struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramNotifier talks to the Telegram Bot API directly over HTTP.
type TelegramNotifier struct {
	Token  string
	Client *http.Client
}

func NewTelegramNotifier(token string) *TelegramNotifier {
	return &TelegramNotifier{
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TelegramNotifier) Send(chatID int64, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.Token)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := t.Client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram send failed: status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes messages to the log instead of a chat. Used when no
// bot token is configured.
type LogNotifier struct {
	Log *zap.Logger
}

func (l *LogNotifier) Send(chatID int64, text string) error {
	l.Log.Info("notification (no bot token configured)",
		zap.Int64("chat_id", chatID),
		zap.String("text", text))
	return nil
}
