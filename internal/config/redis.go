package config

// Redis backs the public-endpoint rate limiter and the response cache.
// Connection parameters come from the environment; when the server is not
// reachable at startup the constructor returns nil and both features are
// silently disabled, the API itself keeps working.

import (
    "context"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from REDIS_ADDR (host:port, default
// localhost:6379), REDIS_PASSWORD and REDIS_DB.  It pings once with a short
// timeout and returns nil on failure so callers can degrade gracefully.
func NewRedisClient() *redis.Client {
    addr := os.Getenv("REDIS_ADDR")
    if addr == "" {
        addr = "localhost:6379"
    }
    dbNum := 0
    if s := os.Getenv("REDIS_DB"); s != "" {
        if n, err := strconv.Atoi(s); err == nil {
            dbNum = n
        }
    }
    client := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       dbNum,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
