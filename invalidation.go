package main

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// InvalidationBatch is the list of CDN paths to purge for one diff and the
// caller reference identifying that diff.
type InvalidationBatch struct {
	Paths           []string
	CallerReference string
}

// NewInvalidationBatch keeps the order of changed. The same ordered input
// always produces the same CallerReference, so resubmitting a diff is a no-op
// for the CDN.
func NewInvalidationBatch(changed []FileRecord) InvalidationBatch {
	batch := InvalidationBatch{Paths: make([]string, 0, len(changed))}

	hash := md5.New()
	for _, record := range changed {
		batch.Paths = append(batch.Paths, "/"+record.Path)
		hash.Write([]byte(record.Path + "~" + epochSeconds(record.ModTime)))
	}
	batch.CallerReference = hex.EncodeToString(hash.Sum(nil))

	return batch
}

// epochSeconds renders t as fractional unix seconds in shortest form,
// always with a fractional part: 1700000000.0, 1700000000.25.
// Sub-microsecond digits are rounded half to even.
func epochSeconds(t time.Time) string {
	seconds := float64(epochMicros(t)) / 1e6
	s := strconv.FormatFloat(seconds, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func epochMicros(t time.Time) int64 {
	micros := t.Unix()*1e6 + int64(t.Nanosecond()/1e3)
	rem := t.Nanosecond() % 1e3
	if rem > 500 || (rem == 500 && micros%2 != 0) {
		micros++
	}
	return micros
}
