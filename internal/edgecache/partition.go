package edgecache

import "fmt"

// Key is the stable logical name of one published partition. It doubles as
// the directory key and as the prefix of the blob object names holding the
// partition's snapshots.
type Key string

// LiveKey returns the single global live-stream partition.
func LiveKey() Key {
	return "data/live"
}

// RecordKey returns the partition for one (category, poolsize, sex) record
// table. All three dimensions are integer-coded.
func RecordKey(category, poolsize, sex int) Key {
	return Key(fmt.Sprintf("data/record_%d_%d_%d", category, poolsize, sex))
}

// SeminarKey returns the partition for one fiscal year of seminars.
func SeminarKey(fiscalYear int) Key {
	return Key(fmt.Sprintf("data/seminar_%d", fiscalYear))
}
