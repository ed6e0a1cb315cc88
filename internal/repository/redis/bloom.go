package redis

import (
	"context"
	"encoding/binary"
	"hash/fnv"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/redis/go-redis/v9"
)

const (
	KeyPostBloom = "bloom:post:ids"

	bloomHashes = 3
)

// postBloom keeps a bitmap of known post ids in a single redis string.
// It only grows: ids are added at startup and when a lookup confirms a post
// the filter had not seen.
type postBloom struct {
	client *redis.Client
	bits   uint64
}

var _ domain.BloomRepository = (*postBloom)(nil)

func NewRedisBloomRepo(client *redis.Client, bitSize uint64) *postBloom {
	return &postBloom{
		client: client,
		bits:   bitSize,
	}
}

func (b *postBloom) Add(ctx context.Context, id int64) error {
	return b.BulkAdd(ctx, []int64{id})
}

func (b *postBloom) BulkAdd(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := b.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			for _, bit := range b.positions(id) {
				pipe.SetBit(ctx, KeyPostBloom, bit, 1)
			}
		}
		return nil
	})
	return err
}

// Exists is false only when one of the id's bits is clear.
func (b *postBloom) Exists(ctx context.Context, id int64) (bool, error) {
	cmds, err := b.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, bit := range b.positions(id) {
			pipe.GetBit(ctx, KeyPostBloom, bit)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	for _, cmd := range cmds {
		if cmd.(*redis.IntCmd).Val() == 0 {
			return false, nil
		}
	}
	return true, nil
}

// positions derives the bit offsets of id from one FNV-1a sum,
// offset i = h1 + i*h2 (mod bits).
func (b *postBloom) positions(id int64) [bloomHashes]int64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	sum := h.Sum64()

	h1, h2 := sum&0xffffffff, sum>>32|1
	var out [bloomHashes]int64
	for i := range out {
		out[i] = int64((h1 + uint64(i)*h2) % b.bits)
	}
	return out
}
