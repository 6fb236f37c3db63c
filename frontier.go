package sitecrawl

// Frontier is the crawl work queue: a FIFO of pending URLs plus the list of
// URLs already handed out. A URL is never queued twice and never queued
// again once it has been dequeued.
type Frontier interface {
	// Enqueue appends url to the queue.
	// Returns false if the URL is already pending or completed.
	Enqueue(url string) bool

	// EnqueueMany enqueues each URL in order and returns how many were added.
	EnqueueMany(urls []string) int

	// Dequeue pops the oldest pending URL and marks it completed.
	// Returns false if no work is pending.
	Dequeue() (string, bool)

	// HasWork reports whether any URL is pending.
	HasWork() bool

	// Remaining returns the number of pending URLs.
	Remaining() int

	// Pending returns a copy of the pending URLs, oldest first.
	Pending() []string

	// Completed returns a copy of the dequeued URLs in dequeue order.
	Completed() []string
}
