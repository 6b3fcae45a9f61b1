// Package eventstore persists callback events: the only state this skill
// ever writes. When an inbound skill message asks for a callback response,
// the composed response body is stored under (event_source, event_id) so a
// caller that cannot receive a synchronous reply can poll for it later.
//
// # Implementations
//
// [DynamoDB] is the production implementation. It writes to a single table
// whose partition key is "event_source" and sort key is "event_id", with
// the serialized response in the "data" attribute and an "expires" UNIX
// timestamp that DynamoDB's TTL reaper uses to reclaim records:
//
//	store := eventstore.NewDynamoDB(&awsCfg, tableName)
//	if err := store.Connect(); err != nil { ... }
//
// Supply [WithAPI] to inject a custom or mock DynamoDB client, and
// [WithClock] to control time in tests.
//
// [Redis] implements the same [Store] interface over a Redis instance for
// local development, using native key TTLs for expiration.
//
// # Semantics
//
// Last put wins for a given key; there is no versioning. Expiration is
// enforced by the backing store's background reaper, not by this package,
// so reads shortly after the expiration timestamp may still succeed.
package eventstore
