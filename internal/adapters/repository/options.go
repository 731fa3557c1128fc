package repository

// Option applies a configuration option to the ShardedStore.
type Option func(*ShardedStore)

// WithShardCount sets the number of lock shards.
func WithShardCount(n int) Option {
	return func(s *ShardedStore) {
		if n > 0 {
			s.shardCount = n
		}
	}
}
