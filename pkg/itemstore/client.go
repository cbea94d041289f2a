package itemstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Client provides namespace-scoped Redis operations for radar items.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb       *redis.Client
	namespace string
}

// NewClient creates a new item store client for the specified namespace.
// Returns an error if the namespace is not DNS-compatible.
func NewClient(redisOpts *redis.Options, namespace string) (*Client, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return nil, err
	}

	return &Client{
		rdb:       redis.NewClient(redisOpts),
		namespace: namespace,
	}, nil
}

// NewClientFromURL parses a redis:// URL and creates a client.
func NewClientFromURL(redisURL, namespace string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return NewClient(opts, namespace)
}

// Namespace returns the namespace this client is scoped to.
func (c *Client) Namespace() string {
	return c.namespace
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// CreateItem validates an item, assigns its Seq from the namespace counter,
// writes it as a hash and publishes the full item JSON on the namespace's
// item_events channel.
func (c *Client) CreateItem(ctx context.Context, item *Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}

	seq, err := c.rdb.Incr(ctx, ItemSeqKey(c.namespace)).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate item sequence: %w", err)
	}
	item.Seq = seq

	key := ItemKey(c.namespace, item.ID)
	if err := c.rdb.HSet(ctx, key, ItemToHash(item)).Err(); err != nil {
		return fmt.Errorf("failed to write item to Redis: %w", err)
	}

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item for event: %w", err)
	}

	if err := c.rdb.Publish(ctx, ItemEventsChannel(c.namespace), itemJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish item event: %w", err)
	}

	return nil
}

// GetItem retrieves an item by ID.
// Returns (nil, redis.Nil) if the item doesn't exist; use IsNotFound to check.
func (c *Client) GetItem(ctx context.Context, itemID string) (*Item, error) {
	hashData, err := c.rdb.HGetAll(ctx, ItemKey(c.namespace, itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read item from Redis: %w", err)
	}

	// HGetAll returns an empty map for missing keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	item, err := HashToItem(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize item: %w", err)
	}

	return item, nil
}

// ItemExists checks if an item exists without fetching it.
func (c *Client) ItemExists(ctx context.Context, itemID string) (bool, error) {
	exists, err := c.rdb.Exists(ctx, ItemKey(c.namespace, itemID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return exists > 0, nil
}

// DeleteItem removes an item. Deleting a missing item returns redis.Nil.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	n, err := c.rdb.Del(ctx, ItemKey(c.namespace, itemID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n == 0 {
		return redis.Nil
	}
	return nil
}

// ScanItemIDs returns the IDs of all items whose ID starts with prefix.
// An empty prefix matches every item in the namespace.
func (c *Client) ScanItemIDs(ctx context.Context, prefix string) ([]string, error) {
	keyPrefix := ItemKey(c.namespace, "")
	iter := c.rdb.Scan(ctx, 0, ItemKeyPattern(c.namespace, prefix), 0).Iterator()

	var ids []string
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan item keys: %w", err)
	}

	return ids, nil
}

// ListItems returns every item in the namespace in write order, so a
// document imported row by row comes back in row order. Keys that vanish
// between SCAN and HGETALL are skipped.
func (c *Client) ListItems(ctx context.Context) ([]*Item, error) {
	ids, err := c.ScanItemIDs(ctx, "")
	if err != nil {
		return nil, err
	}

	items := make([]*Item, 0, len(ids))
	for _, id := range ids {
		item, err := c.GetItem(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Seq != items[j].Seq {
			return items[i].Seq < items[j].Seq
		}
		if items[i].CreatedAtMs != items[j].CreatedAtMs {
			return items[i].CreatedAtMs < items[j].CreatedAtMs
		}
		return items[i].Name < items[j].Name
	})

	return items, nil
}

// ClearItems deletes every item in the namespace and returns how many were removed.
func (c *Client) ClearItems(ctx context.Context) (int, error) {
	ids, err := c.ScanItemIDs(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ItemKey(c.namespace, id)
	}

	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}
	return int(n), nil
}

// Subscription represents an active Pub/Sub subscription to item events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Item
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of item events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Item {
	return s.events
}

// Errors returns the channel of non-fatal subscription errors.
// Messages that fail to decode are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeItemEvents subscribes to item creation events for this namespace.
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once, so a slow subscriber may miss events.
func (c *Client) SubscribeItemEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, ItemEventsChannel(c.namespace))

	eventsChan := make(chan *Item, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var item Item
				if err := json.Unmarshal([]byte(msg.Payload), &item); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal item event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &item:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
