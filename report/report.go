package report

import (
	"fmt"
	"time"

	"github.com/c2h5oh/datasize"
)

// Summary formats the throughput of one strategy pass over a batch
func Summary(title, descriptor string, files int, bytes int64, duration time.Duration) string {
	var throughput, objectThroughput float64
	if seconds := duration.Seconds(); seconds > 0 {
		throughput = float64(bytes) / seconds / (1024 * 1024) // MiB/s
		objectThroughput = float64(files) / seconds
	}

	return fmt.Sprintf("%s %s results: %d files, %s, %.2f MiB/s, %.2f files/s",
		title, descriptor, files, datasize.ByteSize(bytes).HumanReadable(), throughput, objectThroughput)
}
