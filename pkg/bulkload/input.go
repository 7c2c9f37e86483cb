package bulkload

import "fmt"

// The constructor accepts several heterogeneous collection shapes. Each
// optional shape is a small capability interface; anything that satisfies
// none of them (and is not a plain slice) is rejected with ErrInvalidInput.

// ResultSet is a query-result style collection, such as a set of rows
// collected from a database driver or ORM.
type ResultSet[T any] interface {
	Rows() []T
}

// Collection is a generic ordered-collection wrapper.
type Collection[T any] interface {
	Items() []T
}

// Sliceable is anything that can convert itself to a slice.
type Sliceable[T any] interface {
	ToSlice() []T
}

// normalizeInput converts any supported input shape into a single ordered
// slice. When a value satisfies several shapes, the first matching case
// wins: raw slice, then ResultSet, then Collection, then Sliceable.
func normalizeInput[T any](input any) ([]T, error) {
	switch v := input.(type) {
	case []T:
		return v, nil
	case ResultSet[T]:
		return v.Rows(), nil
	case Collection[T]:
		return v.Items(), nil
	case Sliceable[T]:
		return v.ToSlice(), nil
	}
	return nil, fmt.Errorf("%w: %T is not a slice, ResultSet, Collection, or Sliceable", ErrInvalidInput, input)
}
