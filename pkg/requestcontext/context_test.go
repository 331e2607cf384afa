package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsDefaultWhenUnset(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, Actor(ctx))
	assert.Empty(t, ActorName(ctx))
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestAccessorsRoundTrip(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	ctx := WithActor(context.Background(), "user-1")
	ctx = WithActorName(ctx, "Aida")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithClientIP(ctx, "10.0.0.1")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, "user-1", Actor(ctx))
	assert.Equal(t, "Aida", ActorName(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "10.0.0.1", ClientIP(ctx))
	assert.Equal(t, fixed, Now(ctx))
}
