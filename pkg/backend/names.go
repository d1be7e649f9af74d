package backend

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// UserResolver resolves opaque user ids to display names. Identity lives
// outside the core, so the resolver is pluggable and may be absent.
type UserResolver interface {
	ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

type namesCache struct {
	resolver UserResolver
	names    *lru.Cache[int64, string]
}

func newNamesCache(size int) *namesCache {
	if size <= 0 {
		size = 1
	}
	c := &namesCache{}
	cache, _ := lru.New[int64, string](size)
	c.names = cache
	return c
}

// SetUserResolver installs the resolver used by ResolveMemberNames.
func (b *Backend) SetUserResolver(r UserResolver) {
	b.names.resolver = r
}

// ResolveMemberNames returns display names for the given user ids, hitting
// the resolver only for cache misses. Ids the resolver cannot name are left
// out of the result.
func (b *Backend) ResolveMemberNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	r := make(map[int64]string, len(ids))
	var misses []int64
	for _, id := range ids {
		if name, ok := b.names.names.Get(id); ok {
			r[id] = name
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 || b.names.resolver == nil {
		return r, nil
	}

	resolved, err := b.names.resolver.ResolveNames(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, name := range resolved {
		b.names.names.Add(id, name)
		r[id] = name
	}

	return r, nil
}
