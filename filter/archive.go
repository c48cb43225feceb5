package filter

import (
	"cmp"
	"fmt"
	"time"

	"github.com/yousefabuz17/pyzipgrep"
)

// SizeBetween matches archives whose own byte size lies in [minSize, maxSize).
// A maxSize of zero means unbounded above.
func SizeBetween(minSize, maxSize int64) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	return ranged(minSize, maxSize, func(md pyzipgrep.Metadata) int64 { return md.Size })
}

// MembersBetween matches archives whose member count lies in [minCount, maxCount).
// A maxCount of zero means unbounded above.
func MembersBetween(minCount, maxCount int) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	return ranged(minCount, maxCount, func(md pyzipgrep.Metadata) int { return md.MemberCount })
}

// CompressedBetween matches on the summed compressed member sizes.
func CompressedBetween(minSize, maxSize int64) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	return ranged(minSize, maxSize, func(md pyzipgrep.Metadata) int64 { return md.TotalCompressed })
}

// UncompressedBetween matches on the summed uncompressed member sizes.
func UncompressedBetween(minSize, maxSize int64) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	return ranged(minSize, maxSize, func(md pyzipgrep.Metadata) int64 { return md.TotalUncompressed })
}

// RatioBetween matches on the compression ratio (percent space saved).
// A maxRatio of zero means unbounded above.
func RatioBetween(minRatio, maxRatio float64) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	return ranged(minRatio, maxRatio, func(md pyzipgrep.Metadata) float64 { return md.Ratio })
}

// ModifiedAfter matches archives modified at or after t.
func ModifiedAfter(t time.Time) pyzipgrep.Predicate[pyzipgrep.Metadata] {
	return func(md pyzipgrep.Metadata) bool {
		return !md.ModTime.Before(t)
	}
}

// ModifiedBefore matches archives modified strictly before t.
func ModifiedBefore(t time.Time) pyzipgrep.Predicate[pyzipgrep.Metadata] {
	return func(md pyzipgrep.Metadata) bool {
		return md.ModTime.Before(t)
	}
}

// ModifiedBetween matches archives modified in [after, before). The bounds
// must not be inverted.
func ModifiedBetween(after, before time.Time) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	if after.After(before) {
		return nil, fmt.Errorf("%w: lower time bound %s exceeds upper bound %s",
			pyzipgrep.ErrFilterConfiguration, after.Format(time.RFC3339), before.Format(time.RFC3339))
	}

	lo, hi := ModifiedAfter(after), ModifiedBefore(before)
	return func(md pyzipgrep.Metadata) bool {
		return lo(md) && hi(md)
	}, nil
}

// ranged builds a half-open [lo, hi) range predicate over one metadata
// attribute. The zero value of hi means unbounded above.
func ranged[T cmp.Ordered](lo, hi T, get func(pyzipgrep.Metadata) T) (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	var zero T
	if hi != zero && hi < lo {
		return nil, fmt.Errorf("%w: lower bound %v exceeds upper bound %v", pyzipgrep.ErrFilterConfiguration, lo, hi)
	}

	return func(md pyzipgrep.Metadata) bool {
		v := get(md)
		if v < lo {
			return false
		}

		return hi == zero || v < hi
	}, nil
}
