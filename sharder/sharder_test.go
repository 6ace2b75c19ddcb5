package sharder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateShardIsStable(t *testing.T) {
	shardIDs := []uint64{10, 20, 30, 40}
	s := NewSharder(shardIDs)

	key := []byte("some group key")
	shard1, err := s.CalculateShard(ShardTypeHash, key)
	require.NoError(t, err)
	shard2, err := s.CalculateShard(ShardTypeHash, key)
	require.NoError(t, err)
	require.Equal(t, shard1, shard2)
	require.Contains(t, shardIDs, shard1)
}

func TestCalculateShardDistribution(t *testing.T) {
	shardIDs := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	s := NewSharder(shardIDs)

	counts := make(map[uint64]int)
	numKeys := 8000
	for i := 0; i < numKeys; i++ {
		// incrementing keys with a shared prefix, like real encoded group keys
		key := []byte(fmt.Sprintf("prefix/key-%d", i))
		shard, err := s.CalculateShard(ShardTypeHash, key)
		require.NoError(t, err)
		counts[shard]++
	}
	require.Equal(t, len(shardIDs), len(counts))
	expected := numKeys / len(shardIDs)
	for shard, count := range counts {
		require.InDelta(t, expected, count, float64(expected)*0.5, "shard %d", shard)
	}
}

func TestCalculateShardNoShards(t *testing.T) {
	s := NewSharder(nil)
	_, err := s.CalculateShard(ShardTypeHash, []byte("key"))
	require.Error(t, err)
}

func TestCalculateShardRangeUnsupported(t *testing.T) {
	s := NewSharder([]uint64{1})
	require.Panics(t, func() {
		_, _ = s.CalculateShard(ShardTypeRange, []byte("key"))
	})
}

func TestSetShardIDs(t *testing.T) {
	s := NewSharder([]uint64{1})
	shard, err := s.CalculateShard(ShardTypeHash, []byte("key"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), shard)

	s.SetShardIDs([]uint64{2})
	shard, err = s.CalculateShard(ShardTypeHash, []byte("key"))
	require.NoError(t, err)
	require.Equal(t, uint64(2), shard)
}
