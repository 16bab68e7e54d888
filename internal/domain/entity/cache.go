package entity

// CacheStats summarizes the state of the cache backend for the admin API.
type CacheStats struct {
	Connected  bool   `json:"connected"`
	Keys       int64  `json:"keys_count"`
	UsedMemory string `json:"used_memory_human,omitempty"`
}
