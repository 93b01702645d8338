package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Notifier is the outbound messaging contract the handlers depend on
type Notifier interface {
	SendText(message string) error
}

// TelegramNotifier posts messages to the Telegram Bot API, fanning out
// to every configured chat. Partial failure is tolerated: the send
// counts as successful when at least one chat accepted it.
type TelegramNotifier struct {
	BotToken string
	ChatIDs  []string
	BaseURL  string // defaults to the public Bot API, overridable in tests
	Client   *http.Client
}

// NewTelegramNotifier wires a notifier for the given bot and chats
func NewTelegramNotifier(botToken string, chatIDs []string) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: botToken,
		ChatIDs:  chatIDs,
		BaseURL:  "https://api.telegram.org",
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendText delivers one HTML-formatted message to all configured chats
func (n *TelegramNotifier) SendText(message string) error {
	if n.BotToken == "" || len(n.ChatIDs) == 0 {
		return fmt.Errorf("telegram is not configured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.BaseURL, n.BotToken)
	delivered := 0
	var lastErr error

	for _, chatID := range n.ChatIDs {
		if err := n.sendOne(endpoint, chatID, message); err != nil {
			log.Printf("Telegram send to chat %s failed: %v", chatID, err)
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("telegram send failed for all %d chats: %w", len(n.ChatIDs), lastErr)
	}
	return nil
}

func (n *TelegramNotifier) sendOne(endpoint, chatID, message string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      message,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	resp, err := n.Client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to reach Telegram API: %w", err)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode Telegram response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, result.Description)
	}
	return nil
}
