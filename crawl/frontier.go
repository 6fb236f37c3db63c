package crawl

import (
	"log/slog"
	"strings"

	"github.com/fwojciec/sitecrawl"
)

// Default file names for the persisted frontier.
const (
	DefaultPendingFile   = "workingList.txt"
	DefaultCompletedFile = "done.txt"
)

// Compile-time interface verification.
var _ sitecrawl.Frontier = (*Frontier)(nil)

// Frontier is a FIFO URL queue with exact deduplication against both
// pending and already dequeued URLs. Both lists are rewritten to storage,
// one URL per line, after every change.
//
// Frontier is not safe for concurrent use.
type Frontier struct {
	storage       sitecrawl.Storage
	pendingFile   string
	completedFile string
	logger        *slog.Logger

	pending   []string
	completed []string
	queued    map[string]bool
	done      map[string]bool
}

// FrontierOption configures a Frontier.
type FrontierOption func(*Frontier)

// WithPendingFile sets the file the pending queue is written to.
func WithPendingFile(name string) FrontierOption {
	return func(f *Frontier) {
		f.pendingFile = name
	}
}

// WithCompletedFile sets the file the completed list is written to.
func WithCompletedFile(name string) FrontierOption {
	return func(f *Frontier) {
		f.completedFile = name
	}
}

// WithFrontierLogger sets the logger used to report persistence failures.
func WithFrontierLogger(logger *slog.Logger) FrontierOption {
	return func(f *Frontier) {
		f.logger = logger
	}
}

func newFrontier(storage sitecrawl.Storage, opts ...FrontierOption) *Frontier {
	f := &Frontier{
		storage:       storage,
		pendingFile:   DefaultPendingFile,
		completedFile: DefaultCompletedFile,
		logger:        slog.New(slog.DiscardHandler),
		queued:        make(map[string]bool),
		done:          make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFrontier creates a Frontier seeded with urls, dropping duplicates,
// and writes both lists immediately.
func NewFrontier(storage sitecrawl.Storage, urls []string, opts ...FrontierOption) *Frontier {
	f := newFrontier(storage, opts...)
	for _, u := range urls {
		f.push(u)
	}
	f.save()
	return f
}

// RestoreFrontier recreates a Frontier from the lists written by a previous
// run. Missing files are treated as empty lists. Completed URLs are loaded
// first so that pending entries already processed are dropped.
func RestoreFrontier(storage sitecrawl.Storage, opts ...FrontierOption) (*Frontier, error) {
	f := newFrontier(storage, opts...)

	completed, err := readLines(storage, f.completedFile)
	if err != nil {
		return nil, err
	}
	for _, u := range completed {
		if !f.done[u] {
			f.done[u] = true
			f.completed = append(f.completed, u)
		}
	}

	pending, err := readLines(storage, f.pendingFile)
	if err != nil {
		return nil, err
	}
	for _, u := range pending {
		f.push(u)
	}

	f.save()
	return f, nil
}

// Enqueue appends url to the queue and persists the frontier.
// Returns false without writing if the URL is already known.
func (f *Frontier) Enqueue(url string) bool {
	if !f.push(url) {
		return false
	}
	f.save()
	return true
}

// EnqueueMany enqueues urls in order and persists once after the batch.
// Returns the number of URLs added.
func (f *Frontier) EnqueueMany(urls []string) int {
	added := 0
	for _, u := range urls {
		if f.push(u) {
			added++
		}
	}
	if added > 0 {
		f.save()
	}
	return added
}

// Dequeue pops the oldest pending URL, records it as completed, and
// persists the frontier. Returns false if the queue is empty.
func (f *Frontier) Dequeue() (string, bool) {
	if len(f.pending) == 0 {
		return "", false
	}

	url := f.pending[0]
	f.pending[0] = ""
	f.pending = f.pending[1:]
	delete(f.queued, url)

	f.done[url] = true
	f.completed = append(f.completed, url)

	f.save()
	return url, true
}

// HasWork reports whether any URL is pending.
func (f *Frontier) HasWork() bool {
	return len(f.pending) > 0
}

// Remaining returns the number of pending URLs.
func (f *Frontier) Remaining() int {
	return len(f.pending)
}

// Pending returns a copy of the pending queue, oldest first.
func (f *Frontier) Pending() []string {
	return append([]string(nil), f.pending...)
}

// Completed returns a copy of the dequeued URLs in dequeue order.
func (f *Frontier) Completed() []string {
	return append([]string(nil), f.completed...)
}

// Seen reports whether url is pending or completed.
func (f *Frontier) Seen(url string) bool {
	return f.queued[url] || f.done[url]
}

func (f *Frontier) push(url string) bool {
	if f.queued[url] || f.done[url] {
		return false
	}
	f.queued[url] = true
	f.pending = append(f.pending, url)
	return true
}

// save writes both lists. Failures are logged and the in-memory state is
// kept as is.
func (f *Frontier) save() {
	f.write(f.pendingFile, f.pending)
	f.write(f.completedFile, f.completed)
}

func (f *Frontier) write(name string, urls []string) {
	if err := f.storage.WriteFile(name, []byte(strings.Join(urls, "\n"))); err != nil {
		f.logger.Error("failed to persist frontier",
			"path", f.storage.Path(name),
			"err", err,
		)
	}
}

func readLines(storage sitecrawl.Storage, name string) ([]string, error) {
	data, err := storage.ReadFile(name)
	if err != nil {
		if sitecrawl.ErrorCode(err) == sitecrawl.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
