package queue

import "errors"

var ErrFull = errors.New("queue is full")

// Queue is a bounded FIFO ring. One slot stays free to tell full from empty,
// so Init(size) holds size-1 elements. Not safe for concurrent use: a queue
// belongs to one history.
type Queue[T any] struct {
	buf        []T
	head, tail int
}

func (q *Queue[T]) Init(size int) {
	if size < 2 {
		size = 2
	}
	q.buf = make([]T, size)
	q.head, q.tail = 0, 0
}

func (q *Queue[T]) TryPush(v T) bool {
	next := (q.head + 1) % len(q.buf)
	if next == q.tail { // full
		return false
	}
	q.buf[q.head] = v
	q.head = next
	return true
}

// PushAll pushes vs in order and fails with ErrFull on the first rejected element.
func (q *Queue[T]) PushAll(vs []T) error {
	for _, v := range vs {
		if !q.TryPush(v) {
			return ErrFull
		}
	}
	return nil
}

func (q *Queue[T]) TryPop() (T, bool) {
	var zero T
	if q.head == q.tail {
		return zero, false
	}
	v := q.buf[q.tail]
	q.buf[q.tail] = zero
	q.tail = (q.tail + 1) % len(q.buf)
	return v, true
}

func (q *Queue[T]) Len() int {
	return (q.head - q.tail + len(q.buf)) % len(q.buf)
}
