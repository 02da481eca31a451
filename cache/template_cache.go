package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/go-faro/sqlbind/template"
)

// TemplateCache memoizes parsed templates keyed by the fingerprint of their
// SQL text, so repeated executions of the same named statement skip the
// parse. Safe for concurrent use; two goroutines racing on a miss may both
// parse, the loser's result is simply dropped.
type TemplateCache struct {
	cache *lru.Cache[uint64, *template.Template]
}

func NewTemplateCache(size int) *TemplateCache {
	cache, _ := lru.New[uint64, *template.Template](size)
	return &TemplateCache{cache: cache}
}

// GetOrParse returns the cached template for src, parsing and caching it on
// a miss.
func (c *TemplateCache) GetOrParse(src string) (*template.Template, error) {
	key := Fingerprint(src)
	if t, ok := c.cache.Get(key); ok {
		return t, nil
	}
	t, err := template.Parse(src)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, t)
	return t, nil
}

// Len returns the number of cached templates.
func (c *TemplateCache) Len() int { return c.cache.Len() }
