package store

// Collection is an insertion-ordered set of entities, unique by key. It
// is not safe for concurrent use; Store guards it.
type Collection[K comparable, T any] struct {
	key   func(T) K
	order []K
	items map[K]T
}

func NewCollection[K comparable, T any](key func(T) K) *Collection[K, T] {
	return &Collection[K, T]{key: key, items: map[K]T{}}
}

// Replace swaps the contents for items. A key seen twice keeps its first
// position and its last value.
func (c *Collection[K, T]) Replace(items []T) {
	c.order = make([]K, 0, len(items))
	c.items = make(map[K]T, len(items))
	for _, item := range items {
		c.Upsert(item)
	}
}

// Upsert appends a new entity or replaces an existing one in place.
func (c *Collection[K, T]) Upsert(item T) bool {
	k := c.key(item)
	_, exists := c.items[k]
	if !exists {
		c.order = append(c.order, k)
	}
	c.items[k] = item
	return !exists
}

func (c *Collection[K, T]) Remove(k K) bool {
	if _, ok := c.items[k]; !ok {
		return false
	}
	delete(c.items, k)
	for i, existing := range c.order {
		if existing == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection[K, T]) Get(k K) (T, bool) {
	item, ok := c.items[k]
	return item, ok
}

func (c *Collection[K, T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}
	return out
}

func (c *Collection[K, T]) Len() int {
	return len(c.order)
}
