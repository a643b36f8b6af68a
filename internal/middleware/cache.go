package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/ateliermartel/garage-api/internal/config"
)

// captureWriter tees the response body into a buffer while forwarding it to
// the client, up to a size limit.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    limit  int
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.buf.Len() < cw.limit {
        remain := cw.limit - cw.buf.Len()
        if len(b) <= remain {
            cw.buf.Write(b)
        } else {
            cw.buf.Write(b[:remain])
        }
    }
    return cw.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses of the public read
// endpoints in Redis.  All cached endpoints produce JSON, so a hit is
// replayed as a JSON blob with an X-Cache marker.  Responses that outgrow
// MaxBodyBytes are served but not stored.  Without Redis the middleware is
// a no-op.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
            key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)

            if body, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
            }

            cw := &captureWriter{
                ResponseWriter: c.Response().Writer,
                status:         http.StatusOK,
                limit:          cfg.MaxBodyBytes,
            }
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status == http.StatusOK && cw.buf.Len() < cfg.MaxBodyBytes {
                // request context may already be done once the body is written
                _ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}
