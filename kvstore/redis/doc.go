// Package redis provides a kvstore.Store implementation using the go-redis
// client.
//
// Redis is the canonical backend for csvkv: it offers numbered logical
// databases (the namespaces), list append semantics for accumulating records
// under a shared key, pipelining for bulk loads, and BGSAVE for explicit
// durability.
//
// # Basic Usage
//
//	store := redis.New("localhost:6379", "", 0)
//	defer store.Close()
//
//	client, err := csvkv.New(csvkv.WithStore(store))
//
// Any Redis-protocol-compatible server (Valkey, KeyDB, DragonflyDB) works as
// long as it supports FLUSHDB, RPUSH, LRANGE and BGSAVE.
package redis
