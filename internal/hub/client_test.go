package hub

import (
	"context"
	"sync"
	"testing"

	"CineShelf/internal/model"

	"github.com/stretchr/testify/assert"
)

func newDetachedClient() *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		id:     "test-client",
		userID: "test-user",
		egress: make(chan *model.Notification, sendBufSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestSendAfterCloseReturnsFalse(t *testing.T) {
	c := newDetachedClient()
	c.Close()

	for i := 0; i < 100; i++ {
		assert.False(t, c.Send(&model.Notification{Title: "late"}))
	}
}

func TestSendDuringConcurrentClose(t *testing.T) {
	// A push racing a teardown must never panic; it either lands in the
	// buffer or reports failure.
	for i := 0; i < 50; i++ {
		c := newDetachedClient()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Close()
		}()
		go func() {
			defer wg.Done()
			c.Send(&model.Notification{Title: "racing"})
		}()
		wg.Wait()
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newDetachedClient()
	c.Close()
	c.Close()

	assert.False(t, c.Send(&model.Notification{}))
}

func TestSendBeforeCloseSucceeds(t *testing.T) {
	c := newDetachedClient()

	assert.True(t, c.Send(&model.Notification{Title: "on time"}))
	assert.Equal(t, "on time", (<-c.egress).Title)
}
