// Package redis provides the Redis connection bootstrap used by the token
// persistence layer: URL-based configuration, retried connect with a ping
// verification, and a health probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := tokenstore.NewRedisStore(client)
package redis
