package channel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/scheme-engine/internal/channel"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

func TestWhatsAppChannel_Send(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var got struct {
			To   string `json:"to"`
			Body string `json:"body"`
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/messages", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ch := channel.NewWhatsAppChannel(server.URL, "secret", time.Second)
		err := ch.Send(context.Background(), "919876543210", "hello")

		require.NoError(t, err)
		assert.Equal(t, "919876543210", got.To)
		assert.Equal(t, "hello", got.Body)
	})

	t.Run("Gateway error becomes dispatch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		ch := channel.NewWhatsAppChannel(server.URL, "", time.Second)
		err := ch.Send(context.Background(), "919876543210", "hello")

		assert.ErrorIs(t, err, customError.ErrDispatchFailed)
	})

	t.Run("Unreachable gateway becomes dispatch error", func(t *testing.T) {
		ch := channel.NewWhatsAppChannel("http://127.0.0.1:1", "", 200*time.Millisecond)
		err := ch.Send(context.Background(), "919876543210", "hello")

		assert.ErrorIs(t, err, customError.ErrDispatchFailed)
	})
}
