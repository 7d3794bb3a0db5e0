package gp

// arena is a fixed-capacity bump allocator. The backing slice is allocated
// once; reserve advances the cursor and rewind moves it back to a mark.
type arena[T any] struct {
	buf []T
	cur int
}

func newArena[T any](capacity int) arena[T] {
	return arena[T]{buf: make([]T, capacity)}
}

// reserve returns n contiguous slots and advances the cursor. It returns
// false without moving the cursor if fewer than n slots are free.
func (a *arena[T]) reserve(n int) ([]T, bool) {
	if n < 0 || a.cur+n > len(a.buf) {
		return nil, false
	}
	s := a.buf[a.cur : a.cur+n : a.cur+n]
	a.cur += n
	return s, true
}

// rewind moves the cursor back to mark.
func (a *arena[T]) rewind(mark int) {
	a.cur = mark
}

// last returns the most recently reserved slot at or after base, or nil if
// nothing has been reserved since base.
func (a *arena[T]) last(base int) *T {
	if a.cur <= base {
		return nil
	}
	return &a.buf[a.cur-1]
}

// slice returns the slots written between from and the cursor.
func (a *arena[T]) slice(from int) []T {
	return a.buf[from:a.cur]
}

func (a *arena[T]) size() int { return a.cur }

func (a *arena[T]) capacity() int { return len(a.buf) }
