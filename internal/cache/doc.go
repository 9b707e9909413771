// Package cache provides a generic soft-limited LRU cache.
//
// It memoizes shader compilation: SPIR-V modules of the embedded shaders
// and shaderc outputs keyed by source content.
//
//	c := cache.New[string, []byte](64)
//	spv, err := c.GetOrCreate(key, compile)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
