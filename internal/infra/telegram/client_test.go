package telegram

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func TestTelebotAdapter_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			_ = json.Unmarshal(raw, &gotBody)
		} else {
			values, _ := url.ParseQuery(string(raw))
			gotBody = map[string]any{"chat_id": values.Get("chat_id"), "text": values.Get("text")}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`)
	}))
	defer srv.Close()

	b, err := telebot.NewBot(telebot.Settings{Token: "123:abc", URL: srv.URL, Offline: true})
	require.NoError(t, err)

	err = NewTelebotAdapter(b).SendMessage(42, "Reminder run finished", nil)
	require.NoError(t, err)

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "42", gotBody["chat_id"])
	assert.Equal(t, "Reminder run finished", gotBody["text"])
}

func TestTelebotAdapter_SendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`)
	}))
	defer srv.Close()

	b, err := telebot.NewBot(telebot.Settings{Token: "123:abc", URL: srv.URL, Offline: true})
	require.NoError(t, err)

	err = NewTelebotAdapter(b).SendMessage(42, "hi", nil)
	assert.Error(t, err)
}
