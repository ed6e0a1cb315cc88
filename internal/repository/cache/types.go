package cache

import "time"

// DataWithLogicalExpire wraps a cached value with a soft expiry.
// Redis keeps the key until its hard TTL; readers treat it as stale after ExpireAt.
type DataWithLogicalExpire[T any] struct {
	Data      T         `json:"data"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"` // 创建时间，用于调试
}

// IsLogicalExpired 检查是否逻辑过期
func (d *DataWithLogicalExpire[T]) IsLogicalExpired() bool {
	return time.Now().After(d.ExpireAt)
}

// NewDataWithLogicalExpire 创建带逻辑过期的数据
func NewDataWithLogicalExpire[T any](data T, ttl time.Duration) *DataWithLogicalExpire[T] {
	now := time.Now()
	return &DataWithLogicalExpire[T]{
		Data:      data,
		ExpireAt:  now.Add(ttl),
		CreatedAt: now,
	}
}

// HardTTL is how long redis keeps an entry whose logical ttl is ttl.
// The slack lets one stale read trigger a rebuild instead of a miss.
func HardTTL(ttl time.Duration) time.Duration {
	return 2 * ttl
}
