package alert

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farminventory/internal/domain"
	"farminventory/internal/pkg/logger"
)

func redisAddr(t *testing.T) string {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return addr
}

func TestNew_WithoutAddressIsNop(t *testing.T) {
	pub := New("", "inventory:low-stock", logger.Nop())

	_, ok := pub.(NopPublisher)
	assert.True(t, ok)
	assert.NoError(t, pub.PublishLowStock(context.Background(), domain.LowStockAlert{}))
	assert.NoError(t, pub.Close(context.Background()))
}

func TestRedisPublisher_PublishLowStock(t *testing.T) {
	addr := redisAddr(t)
	channel := "test:low-stock:" + primitive.NewObjectID().Hex()

	sub := redis.NewClient(&redis.Options{Addr: addr})
	defer sub.Close()
	ctx := context.Background()
	pubsub := sub.Subscribe(ctx, channel)
	defer pubsub.Close()
	_, err := pubsub.Receive(ctx) // confirmação da inscrição
	require.NoError(t, err)

	pub := NewRedisPublisher(addr, channel, logger.Nop())
	defer pub.Close(ctx)

	alert := domain.LowStockAlert{ItemID: primitive.NewObjectID().Hex(), Name: "Oil Filter", Quantity: 1, LowStockThreshold: 5}
	require.NoError(t, pub.PublishLowStock(ctx, alert))

	select {
	case msg := <-pubsub.Channel():
		var got domain.LowStockAlert
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, alert.ItemID, got.ItemID)
		assert.Equal(t, 1, got.Quantity)
	case <-time.After(2 * time.Second):
		t.Fatal("alert not received")
	}
}

func TestRedisPublisher_UnreachableReturnsError(t *testing.T) {
	pub := NewRedisPublisher("127.0.0.1:1", "inventory:low-stock", logger.Nop())
	defer pub.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := pub.PublishLowStock(ctx, domain.LowStockAlert{Name: "Oil Filter"})
	assert.Error(t, err)
}
