// Package stream provides an immutable, lazily-materialized view over a
// sequence of elements.
//
// A Stream is a small value: a cursor into a shared, append-only buffer.
// Advancing a Stream returns a new Stream value with the cursor moved one
// element forward; the original remains valid and unchanged. Because all
// forks of a Stream share the same buffer, rewinding to an earlier point is
// free: a caller simply keeps the old Stream value. Elements are demanded
// from the underlying source at most once, no matter how many forks read
// them.
package stream

// A Stream is an immutable cursor over a shared element buffer.
//
// The zero value is an empty stream. Streams are cheap to copy and safe to
// fork: advancing one fork never affects another.
type Stream[T any] struct {
	buf   *buffer[T]
	start int
}

// buffer holds elements materialized from the source. It only ever grows,
// and each element is pulled from the source exactly once.
type buffer[T any] struct {
	next  func() (T, bool)
	items []T
	done  bool
}

// fill materializes elements until at least n are buffered or the source is
// exhausted, and returns min(n, len(items)).
func (b *buffer[T]) fill(n int) int {
	for len(b.items) < n && !b.done {
		item, ok := b.next()
		if !ok {
			b.done = true
			break
		}
		b.items = append(b.items, item)
	}
	if len(b.items) < n {
		return len(b.items)
	}
	return n
}

// New returns a Stream that pulls elements from next. The function is
// called lazily, and never again after it first reports false.
func New[T any](next func() (T, bool)) Stream[T] {
	return Stream[T]{buf: &buffer[T]{next: next}}
}

// FromSlice returns a Stream over an already-materialized slice. The slice
// is not copied and must not be mutated afterwards.
func FromSlice[T any](items []T) Stream[T] {
	return Stream[T]{buf: &buffer[T]{items: items, done: true}}
}

// FromString returns a Stream over the runes of s.
func FromString(s string) Stream[rune] {
	return FromSlice([]rune(s))
}

// Empty reports whether the stream has no more elements. It forces at most
// one element from the underlying source.
func (s Stream[T]) Empty() bool {
	if s.buf == nil {
		return true
	}
	return s.buf.fill(s.start+1) <= s.start
}

// Shift returns the head element and a new Stream positioned after it. The
// receiver is unchanged. Shift panics if the stream is empty; callers that
// cannot rely on a sentinel terminator must check Empty first.
func (s Stream[T]) Shift() (T, Stream[T]) {
	if s.Empty() {
		panic("stream: shift from empty stream")
	}
	return s.buf.items[s.start], Stream[T]{buf: s.buf, start: s.start + 1}
}

// Peek returns the element n positions ahead without advancing. Peek(0)
// looks at the head. The second result is false if the stream ends first.
func (s Stream[T]) Peek(n int) (T, bool) {
	var zero T
	if s.buf == nil || s.buf.fill(s.start+n+1) <= s.start+n {
		return zero, false
	}
	return s.buf.items[s.start+n], true
}

// PeekRange returns up to count elements starting n positions ahead,
// without advancing. The result may be shorter than count if the stream
// ends first. The returned slice aliases the shared buffer and must be
// treated as read-only.
func (s Stream[T]) PeekRange(n, count int) []T {
	if s.buf == nil {
		return nil
	}
	end := s.buf.fill(s.start + n + count)
	from := s.start + n
	if from > end {
		from = end
	}
	return s.buf.items[from:end]
}

// Pos returns the cursor position: the number of elements consumed from the
// start of the underlying sequence.
func (s Stream[T]) Pos() int {
	return s.start
}
