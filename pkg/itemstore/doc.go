// Package itemstore persists radar item records in Redis.
//
// # Overview
//
// Items are the stored form of radar rows: name, ring, quadrant, freshness
// flag, topic and description, plus an ID and creation timestamp. They are
// written by `radar import`, listed by `radar items`, served by `radar serve`
// and read back as a row source by `radar plot --source store`.
//
// # Namespaces
//
// All Redis keys and Pub/Sub channels are namespaced so several radars can
// share one Redis server without interference.
//
// # Usage Example
//
//	client, err := itemstore.NewClient(&redis.Options{Addr: "localhost:6379"}, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	item := itemstore.NewItem(radar.Entry{Name: "Kubernetes", Ring: "Adopt", Quadrant: "Tools"})
//	if err := client.CreateItem(ctx, item); err != nil {
//		log.Fatal(err)
//	}
//
// # Redis Schema
//
// Items: radar:{namespace}:item:{item_id} (hash)
//
// Item events: radar:{namespace}:item_events (Pub/Sub, full item JSON)
package itemstore
