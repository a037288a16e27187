package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*FeedHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewFeedHub(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/home/feed", hub.HandleFeed)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/home/feed?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestFeedDeliversToMatchingChannel(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "locationId=3&date=2025-03-14")
	channel := services.FeedChannel(3, "2025-03-14")
	require.Eventually(t, func() bool { return hub.Subscribers(channel) == 1 }, time.Second, 10*time.Millisecond)

	hub.Deliver(services.RatingEvent{Type: "rating.created", LocationID: 9, Date: "2025-03-14", MenuID: 1})
	hub.Deliver(services.RatingEvent{Type: "rating.created", LocationID: 3, Date: "2025-03-14", MenuID: 2, AverageRating: 4.5})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev services.RatingEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uint(2), ev.MenuID)
	assert.Equal(t, 4.5, ev.AverageRating)
}

func TestFeedRejectsMissingLocation(t *testing.T) {
	_, srv := startHub(t)
	res, err := http.Get(srv.URL + "/home/feed")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFeedUnsubscribesOnClose(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "locationId=1&date=2025-03-14")
	channel := services.FeedChannel(1, "2025-03-14")
	require.Eventually(t, func() bool { return hub.Subscribers(channel) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Subscribers(channel) == 0 }, 2*time.Second, 10*time.Millisecond)
}

type failingBus struct{}

func (failingBus) Publish(context.Context, services.RatingEvent) error {
	return assert.AnError
}
func (failingBus) StartForwarder(context.Context, func(services.RatingEvent)) error { return nil }
func (failingBus) Close() error                                                     { return nil }

func TestPublisherFallsBackToLocalHub(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "locationId=5&date=2025-03-14")
	require.Eventually(t, func() bool { return hub.Subscribers(services.FeedChannel(5, "2025-03-14")) == 1 }, time.Second, 10*time.Millisecond)

	pub := NewPublisher(hub, failingBus{}, logger.Nop())
	pub.PublishRating(context.Background(), services.RatingEvent{LocationID: 5, Date: "2025-03-14", MenuID: 7})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev services.RatingEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uint(7), ev.MenuID)
}

func TestSlowSubscriberIsDroppedWithItsChannel(t *testing.T) {
	hub := NewFeedHub(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	channel := services.FeedChannel(5, "2025-03-14")
	slow := &client{channel: channel, send: make(chan services.RatingEvent)}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.Subscribers(channel) == 1 }, time.Second, 10*time.Millisecond)

	hub.Deliver(services.RatingEvent{Type: "rating.created", LocationID: 5, Date: "2025-03-14", MenuID: 1})

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[channel]
		return !ok
	}, time.Second, 10*time.Millisecond)

	_, open := <-slow.send
	assert.False(t, open)
}
