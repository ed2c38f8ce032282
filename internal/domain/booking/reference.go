package booking

// Reference points at a directory record either by id alone or with the
// record already loaded. Accessors always normalize to an id, so callers
// never branch on which form they were handed.
type Reference[T any] struct {
	id     uint
	record *T
}

func Ref[T any](id uint) Reference[T] {
	return Reference[T]{id: id}
}

func Resolved[T any](id uint, record *T) Reference[T] {
	return Reference[T]{id: id, record: record}
}

func (r Reference[T]) ID() uint {
	return r.id
}

// Record returns the loaded record, if any.
func (r Reference[T]) Record() (*T, bool) {
	return r.record, r.record != nil
}
