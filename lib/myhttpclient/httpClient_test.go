package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Run("Post json and read response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, `{"a":1}`, string(body))

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"123"}`))
		}))
		defer server.Close()

		status, resp, err := New(time.Second).Send(context.TODO(), http.MethodPost, server.URL+"/api/orders", []byte(`{"a":1}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, `{"id":"123"}`, string(resp))
	})

	t.Run("Post without body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.Empty(t, body)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		status, _, err := New(0).Send(context.TODO(), http.MethodPost, server.URL+"/capture", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("Unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, _, err := New(time.Second).Send(context.TODO(), http.MethodPost, url+"/api/orders", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error sending POST")
	})
}
