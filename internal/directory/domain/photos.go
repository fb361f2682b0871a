package domain

// PhotoQueue is the portfolio photo state of a listing: moderated photos shown
// publicly plus photos awaiting review. Both slices keep insertion order and
// never share a URL. Every operation returns a new queue and leaves the
// receiver untouched; the Mongo repository applies the same rules atomically.
type PhotoQueue struct {
	Approved []string
	Pending  []string
}

// Submit adds url to the pending queue. URLs already pending or approved are ignored.
func (q PhotoQueue) Submit(url string) PhotoQueue {
	if url == "" || containsString(q.Approved, url) || containsString(q.Pending, url) {
		return q.clone()
	}
	next := q.clone()
	next.Pending = append(next.Pending, url)
	return next
}

// Approve moves url from pending to approved. A url not in pending is a no-op,
// which makes repeated approvals idempotent.
func (q PhotoQueue) Approve(url string) PhotoQueue {
	if !containsString(q.Pending, url) {
		return q.clone()
	}
	next := PhotoQueue{
		Approved: append([]string(nil), q.Approved...),
		Pending:  removeString(q.Pending, url),
	}
	if !containsString(next.Approved, url) {
		next.Approved = append(next.Approved, url)
	}
	return next
}

// Reject drops url from pending. Approved photos are never touched.
func (q PhotoQueue) Reject(url string) PhotoQueue {
	return PhotoQueue{
		Approved: append([]string(nil), q.Approved...),
		Pending:  removeString(q.Pending, url),
	}
}

// ApproveAll appends every pending url in order, skipping any already approved,
// and empties pending.
func (q PhotoQueue) ApproveAll() PhotoQueue {
	approved := append([]string(nil), q.Approved...)
	for _, url := range q.Pending {
		if !containsString(approved, url) {
			approved = append(approved, url)
		}
	}
	return PhotoQueue{Approved: approved, Pending: []string{}}
}

// RejectAll empties pending.
func (q PhotoQueue) RejectAll() PhotoQueue {
	return PhotoQueue{Approved: append([]string(nil), q.Approved...), Pending: []string{}}
}

// Disjoint reports whether no url appears in both lists.
func (q PhotoQueue) Disjoint() bool {
	set := make(map[string]struct{}, len(q.Approved))
	for _, url := range q.Approved {
		set[url] = struct{}{}
	}
	for _, url := range q.Pending {
		if _, ok := set[url]; ok {
			return false
		}
	}
	return true
}

func (q PhotoQueue) clone() PhotoQueue {
	return PhotoQueue{
		Approved: append([]string(nil), q.Approved...),
		Pending:  append([]string(nil), q.Pending...),
	}
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func removeString(list []string, value string) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		if item != value {
			result = append(result, item)
		}
	}
	return result
}
