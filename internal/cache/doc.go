// Package cache provides a small generic memoization cache.
//
// [Cache] is a thread-safe map with a soft size limit: when the limit is
// exceeded the least recently used quarter of the entries is evicted.
// [Cache.GetOrCreate] runs its constructor under the lock, so concurrent
// callers asking for the same key build the value once. Constructor
// errors are returned to the caller and nothing is stored.
//
//	c := cache.New[string, *atlas.Atlas](32)
//	a, err := c.GetOrCreate("4.6.12", build)
package cache
