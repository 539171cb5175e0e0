// Package groupsort implements a stable lexicographic sort and a k-way
// merge over shards of grouped, time-tagged row data. Rows are backed by
// Apache Arrow arrays: N int32 group-key columns declared by the caller,
// plus fixed float64 time, int32 ant1/ant2, and int64 rows columns.
//
// Sort produces a new shard whose rows are permuted into ascending
// lexicographic order (group keys first, then time, ant1, ant2). Merge
// combines already-sorted shards into one, using the same ordering, via
// a k-way priority-queue merge.
//
// Like colmap, this package is synchronous: it does no I/O and every
// operation completes in bounded, in-memory work.
package groupsort
