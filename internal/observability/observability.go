package observability

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

// Wire metrics:
// 1. Bytes read / written
// 2. Commands encoded onto the stream
// 3. Replies decoded, split into request replies and push messages
// 4. Server error replies

const dimensionless = "1"

var (
	MBytesRead    = stats.Int64("resp/bytes_read", "The number of bytes read from the server", stats.UnitBytes)
	MBytesWritten = stats.Int64("resp/bytes_written", "The number of bytes written out to the server", stats.UnitBytes)
	MCommands     = stats.Int64("resp/commands", "The number of commands written to the server", dimensionless)
	MReplies      = stats.Int64("resp/replies", "The number of request replies decoded", dimensionless)
	MPushes       = stats.Int64("resp/push_messages", "The number of push messages decoded", dimensionless)
	MServerErrors = stats.Int64("resp/server_errors", "The number of error replies received from the server", dimensionless)
)

var defaultBytesDistribution = view.Distribution(
	// [0, 1KB, 2KB, 4KB, 16KB, 64KB, 256KB,   1MB,     4MB,     16MB,     64MB,     256MB,     1GB,        4GB]
	0, 1024, 2048, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216, 67108864, 268435456, 1073741824, 4294967296,
)

var Views = []*view.View{
	{
		Name:        "resp/client/bytes_written_cumulative",
		Description: "The number of bytes written out to the server",
		Aggregation: view.Sum(),
		Measure:     MBytesWritten,
	},
	{
		Name:        "resp/client/bytes_written_distribution",
		Description: "The distribution of bytes written out to the server",
		Aggregation: defaultBytesDistribution,
		Measure:     MBytesWritten,
	},
	{
		Name:        "resp/client/bytes_read_cumulative",
		Description: "The number of bytes read from the server",
		Aggregation: view.Sum(),
		Measure:     MBytesRead,
	},
	{
		Name:        "resp/client/bytes_read_distribution",
		Description: "The distribution of bytes read from the server",
		Aggregation: defaultBytesDistribution,
		Measure:     MBytesRead,
	},
	{
		Name:        "resp/client/commands",
		Description: "The number of commands written to the server",
		Aggregation: view.Count(),
		Measure:     MCommands,
	},
	{
		Name:        "resp/client/replies",
		Description: "The number of request replies decoded",
		Aggregation: view.Count(),
		Measure:     MReplies,
	},
	{
		Name:        "resp/client/push_messages",
		Description: "The number of push messages decoded",
		Aggregation: view.Count(),
		Measure:     MPushes,
	},
	{
		Name:        "resp/client/server_errors",
		Description: "The number of error replies received from the server",
		Aggregation: view.Count(),
		Measure:     MServerErrors,
	},
}

func RecordBytesRead(n int) {
	if n > 0 {
		stats.Record(context.Background(), MBytesRead.M(int64(n)))
	}
}

func RecordBytesWritten(n int) {
	if n > 0 {
		stats.Record(context.Background(), MBytesWritten.M(int64(n)))
	}
}

func RecordCommands(n int) {
	stats.Record(context.Background(), MCommands.M(int64(n)))
}

func RecordReply() {
	stats.Record(context.Background(), MReplies.M(1))
}

func RecordPush() {
	stats.Record(context.Background(), MPushes.M(1))
}

func RecordServerError() {
	stats.Record(context.Background(), MServerErrors.M(1))
}
