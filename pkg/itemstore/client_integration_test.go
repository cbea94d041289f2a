//go:build integration

package itemstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dyluth/radar/pkg/radar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container for testing.
func setupRedis(t *testing.T) string {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")

	t.Cleanup(func() {
		if err := redisC.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s", host, port.Port())
}

func TestItemStore_RealRedis(t *testing.T) {
	redisURL := setupRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewClientFromURL(redisURL, "integration")
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(ctx))

	sub, err := client.SubscribeItemEvents(ctx)
	require.NoError(t, err)
	defer sub.Close()

	// Give the subscription time to register
	time.Sleep(100 * time.Millisecond)

	entries := []radar.Entry{
		{Name: "Kubernetes", Ring: "Adopt", Quadrant: "Tools"},
		{Name: "GraphQL", Ring: "Trial", Quadrant: "Languages", IsNew: true},
	}
	for _, e := range entries {
		require.NoError(t, client.CreateItem(ctx, NewItem(e)))
	}

	for range entries {
		select {
		case <-sub.Events():
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for item event")
		}
	}

	items, err := client.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	n, err := client.ClearItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
