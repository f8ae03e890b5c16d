package benchmark

// BenchmarkParams holds the parameters shared by all strategies
type BenchmarkParams struct {
	MountPoint string // Root of the mounted filesystem written by the EFS strategy
	RateLimit  int    // Max writes per second (0 means no limit)
}
