package sharder

import (
	"sync"
	"sync/atomic"

	"github.com/twmb/murmur3"

	"github.com/skyzh/tikv/errors"
)

type ShardType int

const (
	ShardTypeHash = iota + 1
	ShardTypeRange
)

// Sharder routes encoded group keys to worker shards, so partial aggregation
// results for the same group always land on the same downstream worker. The
// shard set can be swapped at runtime without blocking routing.
type Sharder struct {
	shardIDs atomic.Value
	lock     sync.Mutex
}

func NewSharder(shardIDs []uint64) *Sharder {
	s := &Sharder{}
	s.setShardIDs(shardIDs)
	return s
}

func (s *Sharder) CalculateShard(shardType ShardType, key []byte) (uint64, error) {
	shardIDs := s.getShardIDs()
	return s.CalculateShardWithShardIDs(shardType, key, shardIDs)
}

func (s *Sharder) CalculateShardWithShardIDs(shardType ShardType, key []byte, shardIDs []uint64) (uint64, error) {
	if shardType == ShardTypeHash {
		return computeHashShard(key, shardIDs)
	}
	panic("unsupported")
}

func computeHashShard(key []byte, shardIDs []uint64) (uint64, error) {
	if len(shardIDs) == 0 {
		return 0, errors.Errorf("no shards available")
	}
	hash := Hash(key)
	index := hash % uint64(len(shardIDs))
	return shardIDs[index], nil
}

// Hash gives a well distributed 64 bit hash of the key. Group keys are
// memcomparable encodings and often share long prefixes, murmur3 spreads those
// fine without a second hashing round.
func Hash(key []byte) uint64 {
	return murmur3.Sum64(key)
}

func (s *Sharder) getShardIDs() []uint64 {
	return s.shardIDs.Load().([]uint64)
}

func (s *Sharder) setShardIDs(shardIDs []uint64) {
	shardIDsCopy := make([]uint64, len(shardIDs))
	copy(shardIDsCopy, shardIDs)
	s.shardIDs.Store(shardIDsCopy)
}

// SetShardIDs replaces the routable shard set. Keys already routed are not
// re-routed, callers own any rebalancing. The lock serializes writers; readers
// go through the atomic.Value unblocked.
func (s *Sharder) SetShardIDs(shardIDs []uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.setShardIDs(shardIDs)
}
