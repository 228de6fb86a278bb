package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
}

func TestWebhookNotifier_Success(t *testing.T) {
	var got Payload
	var contentType, method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, Identity{Username: "Order Bot"}, time.Second, WithClock(fixedClock))
	err := n.Notify(context.Background(), sampleOrder(), sampleCart().Lines())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Order Bot", got.Username)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "2026-10-17T09:00:00.000Z", got.Embeds[0].Timestamp)
	assert.Equal(t, "2x Test 1\n1x Test 2", got.Embeds[0].Description)
}

func TestWebhookNotifier_NonSuccessStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, Identity{}, time.Second)
	err := n.Notify(context.Background(), sampleOrder(), sampleCart().Lines())

	require.Error(t, err)
	assert.True(t, IsNotification(err))
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry expected")
}

func TestWebhookNotifier_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewWebhookNotifier(url, Identity{}, time.Second)
	err := n.Notify(context.Background(), sampleOrder(), sampleCart().Lines())

	require.Error(t, err)
	assert.True(t, IsNotification(err))
}

func TestWebhookNotifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	n := NewWebhookNotifier(srv.URL, Identity{}, 50*time.Millisecond)
	err := n.Notify(context.Background(), sampleOrder(), sampleCart().Lines())

	require.Error(t, err)
	assert.True(t, IsNotification(err))
}

func TestWebhookNotifier_BadURL(t *testing.T) {
	n := NewWebhookNotifier("://nope", Identity{}, time.Second)
	err := n.Notify(context.Background(), sampleOrder(), nil)

	assert.True(t, IsNotification(err))
}
