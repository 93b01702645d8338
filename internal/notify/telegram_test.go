package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testNotifier(serverURL string, chatIDs ...string) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: "test-token",
		ChatIDs:  chatIDs,
		BaseURL:  serverURL,
		Client:   &http.Client{Timeout: time.Second},
	}
}

func TestSendTextFansOutToAllChats(t *testing.T) {
	var received []sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		var req sendMessageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		received = append(received, req)
		json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer server.Close()

	n := testNotifier(server.URL, "111", "222")
	assert.NoError(t, n.SendText("<b>halo</b>"))

	assert.Len(t, received, 2)
	assert.Equal(t, "111", received[0].ChatID)
	assert.Equal(t, "222", received[1].ChatID)
	assert.Equal(t, "<b>halo</b>", received[0].Text)
	assert.Equal(t, "HTML", received[0].ParseMode)
}

func TestSendTextPartialFailureStillSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ChatID == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
			return
		}
		json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer server.Close()

	n := testNotifier(server.URL, "bad", "good")
	assert.NoError(t, n.SendText("halo"))
}

func TestSendTextAllChatsFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "bot was blocked"})
	}))
	defer server.Close()

	n := testNotifier(server.URL, "111", "222")
	err := n.SendText("halo")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 chats")
}

func TestSendTextUnconfigured(t *testing.T) {
	n := NewTelegramNotifier("", nil)
	assert.Error(t, n.SendText("halo"))
}
