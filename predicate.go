package pyzipgrep

// Predicate is a pure boolean test over exactly one subject type. Predicates
// must be side-effect-free and must not block; the engine evaluates them
// synchronously on its coordination path.
//
// The three subjects in use are [Metadata] (archive-level), [Member]
// (path-level) and string (content-level). A nil Predicate anywhere in this
// package means "no filtering".
type Predicate[T any] func(T) bool

// AllOf returns a Predicate that is true iff every given predicate is true.
//
// With no predicates the result is always true: an empty filter list means no
// filtering, never "reject everything".
func AllOf[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// AnyOf returns a Predicate that is true iff at least one of the given
// predicates is true.
//
// With no predicates the result is always true, same as [AllOf]: callers
// composing an empty filter list get unrestricted pass-through.
func AnyOf[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		if len(preds) == 0 {
			return true
		}
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// NoneOf returns a Predicate that is true iff none of the given predicates
// are true. With no predicates the result is always true.
func NoneOf[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return false
			}
		}
		return true
	}
}
