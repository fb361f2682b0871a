package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoQueueSubmit(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a"}}

	q = q.Submit("b")
	q = q.Submit("b")
	q = q.Submit("a")

	assert.Equal(t, []string{"a"}, q.Approved)
	assert.Equal(t, []string{"b"}, q.Pending)
	assert.True(t, q.Disjoint())
}

func TestPhotoQueueApproveIsIdempotent(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a"}, Pending: []string{"b", "c"}}

	once := q.Approve("b")
	twice := once.Approve("b")

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"a", "b"}, twice.Approved)
	assert.Equal(t, []string{"c"}, twice.Pending)
	assert.True(t, twice.Disjoint())
}

func TestPhotoQueueApproveUnknownIsNoop(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a"}, Pending: []string{"b"}}

	assert.Equal(t, q, q.Approve("zzz"))
}

func TestPhotoQueueRejectLeavesApproved(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a"}, Pending: []string{"b"}}

	next := q.Reject("b").Reject("a")

	assert.Equal(t, []string{"a"}, next.Approved)
	assert.Empty(t, next.Pending)
}

func TestPhotoQueueApproveAll(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a", "b"}, Pending: []string{"c", "a", "d"}}

	next := q.ApproveAll()

	assert.Equal(t, []string{"a", "b", "c", "d"}, next.Approved)
	assert.Empty(t, next.Pending)
	assert.True(t, next.Disjoint())
}

func TestPhotoQueueRejectAll(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a"}, Pending: []string{"b", "c"}}

	next := q.RejectAll()

	assert.Equal(t, []string{"a"}, next.Approved)
	assert.Empty(t, next.Pending)
}

func TestPhotoQueueOperationsDoNotMutateReceiver(t *testing.T) {
	q := PhotoQueue{Approved: []string{"a"}, Pending: []string{"b"}}

	_ = q.Approve("b")
	_ = q.Submit("c")
	_ = q.ApproveAll()

	assert.Equal(t, []string{"a"}, q.Approved)
	assert.Equal(t, []string{"b"}, q.Pending)
}

func TestPhotoQueueNeverLosesOrDuplicates(t *testing.T) {
	start := PhotoQueue{Approved: []string{"a"}, Pending: []string{"b", "c"}}
	ops := []func(PhotoQueue) PhotoQueue{
		func(q PhotoQueue) PhotoQueue { return q.Submit("d") },
		func(q PhotoQueue) PhotoQueue { return q.Approve("c") },
		func(q PhotoQueue) PhotoQueue { return q.Submit("c") },
		func(q PhotoQueue) PhotoQueue { return q.Reject("b") },
		func(q PhotoQueue) PhotoQueue { return q.Submit("e") },
		func(q PhotoQueue) PhotoQueue { return q.ApproveAll() },
	}

	q := start
	for _, op := range ops {
		q = op(q)
		assert.True(t, q.Disjoint())
		seen := map[string]int{}
		for _, url := range append(append([]string{}, q.Approved...), q.Pending...) {
			seen[url]++
		}
		for url, n := range seen {
			assert.Equal(t, 1, n, "url %s duplicated", url)
		}
	}
	assert.Equal(t, []string{"a", "c", "d", "e"}, q.Approved)
	assert.Empty(t, q.Pending)
}
