package engine

import (
	"github.com/threecheck/engine/internal/board"
	"github.com/threecheck/engine/internal/ttstore"
)

// EntryFlag classifies how a stored score bounds the true value, using
// three named flags rather than the usual exact/lower/upper bound naming.
type EntryFlag uint8

const (
	// Ignore marks a slot that should never be trusted: either it has
	// never been written, or the position it describes is stale.
	Ignore EntryFlag = iota
	// BestMove marks a principal-variation entry: score is exact.
	BestMove
	// GoodMove marks a refutation/cutoff entry: score is only a bound.
	GoodMove
)

// entry is one transposition table slot.
type entry struct {
	hash  uint64
	move  board.Move
	score int
	depth int
	flag  EntryFlag
}

// bucketSize is how many colliding hashes one bucket holds before the
// shallowest entry is evicted.
const bucketSize = 4

// TranspositionTable is a hash map with a fixed bucket count and
// open-chaining buckets of bounded size. Entries are plain value structs
// with no generation counter; a full bucket makes room by evicting its
// shallowest entry. Store also clears the whole table once more than 10x
// bucket count entries are stored, but since a bucket holds at most
// bucketSize entries that count is never reached: the table is otherwise
// emptied only by an explicit Clear.
type TranspositionTable struct {
	buckets   [][]entry
	numBuckets uint64
	stored    int

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a table sized in megabytes, rounding the
// bucket count down to a power of two for fast masking.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const approxEntryBytes = 40
	numBuckets := (uint64(sizeMB) * 1024 * 1024) / (approxEntryBytes * bucketSize)
	numBuckets = roundDownToPowerOf2(numBuckets)
	if numBuckets == 0 {
		numBuckets = 1
	}
	return &TranspositionTable{
		buckets:    make([][]entry, numBuckets),
		numBuckets: numBuckets,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) bucketIndex(hash uint64) uint64 {
	return hash & (tt.numBuckets - 1)
}

// Probe looks up hash and reports the stored entry along with its flag.
// An Ignore flag (or a miss) means the caller must not trust the score.
func (tt *TranspositionTable) Probe(hash uint64) (board.Move, int, int, EntryFlag) {
	tt.probes++
	bucket := tt.buckets[tt.bucketIndex(hash)]
	for _, e := range bucket {
		if e.hash == hash && e.flag != Ignore {
			tt.hits++
			return e.move, e.score, e.depth, e.flag
		}
	}
	return board.NoMove, 0, 0, Ignore
}

// Store records a search result, replacing a same-key or shallower entry
// in the bucket and evicting the shallowest one if the bucket is full.
// It clears the table first once the stored count exceeds 10x the bucket
// count, a count the bucketSize bound keeps out of reach.
func (tt *TranspositionTable) Store(hash uint64, move board.Move, score, depth int, flag EntryFlag) {
	if tt.stored > int(tt.numBuckets)*10 {
		tt.Clear()
	}

	idx := tt.bucketIndex(hash)
	bucket := tt.buckets[idx]

	for i, e := range bucket {
		if e.hash == hash {
			if depth >= e.depth {
				bucket[i] = entry{hash: hash, move: move, score: score, depth: depth, flag: flag}
			}
			return
		}
	}

	newEntry := entry{hash: hash, move: move, score: score, depth: depth, flag: flag}
	if len(bucket) < bucketSize {
		tt.buckets[idx] = append(bucket, newEntry)
		tt.stored++
		return
	}

	shallowest := 0
	for i, e := range bucket {
		if e.depth < bucket[shallowest].depth {
			shallowest = i
		}
	}
	bucket[shallowest] = newEntry
}

// Clear discards every stored entry and resets statistics.
func (tt *TranspositionTable) Clear() {
	for i := range tt.buckets {
		tt.buckets[i] = nil
	}
	tt.stored = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille of buckets holding at least one entry.
func (tt *TranspositionTable) HashFull() int {
	used := 0
	sample := int(tt.numBuckets)
	if sample > 1000 {
		sample = 1000
	}
	for i := 0; i < sample; i++ {
		if len(tt.buckets[i]) > 0 {
			used++
		}
	}
	if sample == 0 {
		return 0
	}
	return (used * 1000) / sample
}

// HitRate returns the cache hit rate as a percentage of probes.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Snapshot exports every stored entry as ttstore records, for an optional
// disk-backed warm start on the next process. Persistence never sits on
// the search hot path, only at startup/shutdown.
func (tt *TranspositionTable) Snapshot() []ttstore.Record {
	records := make([]ttstore.Record, 0, tt.stored)
	for _, bucket := range tt.buckets {
		for _, e := range bucket {
			if e.flag == Ignore {
				continue
			}
			records = append(records, ttstore.Record{
				Hash:  e.hash,
				Move:  uint32(e.move),
				Score: e.score,
				Depth: e.depth,
				Flag:  uint8(e.flag),
			})
		}
	}
	return records
}

// LoadSnapshot repopulates the table from previously saved records. Stale
// or mismatched entries are harmless: Probe still verifies the hash.
func (tt *TranspositionTable) LoadSnapshot(records []ttstore.Record) {
	for _, r := range records {
		tt.Store(r.Hash, board.Move(r.Move), r.Score, r.Depth, EntryFlag(r.Flag))
	}
}

// AdjustScoreFromTT converts a stored mate score back to the current ply's
// distance-from-root framing.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT converts a mate score at the current ply into the
// ply-independent form used for storage.
func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
