// Package cache stores JSON-encodable values with a TTL. Redis backs it in
// deployments; the in-memory store serves local runs and tests.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a TTL key/value store. Get decodes the stored value into dst and
// reports whether the key was present.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const keyPrefix = "storefront"

// Key joins parts under the service prefix, e.g. "storefront:facets:all".
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}
