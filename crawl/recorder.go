package crawl

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/fwojciec/sitecrawl"
)

// Ensure Recorder implements sitecrawl.RecordStore at compile time.
var _ sitecrawl.RecordStore = (*Recorder)(nil)

// Recorder stores extraction records as a JSON object keyed "0", "1", ...
// in insertion order. The whole file is rewritten after every append.
type Recorder struct {
	storage sitecrawl.Storage
	file    string
	logger  *slog.Logger

	records []sitecrawl.Record
}

// NewRecorder creates a Recorder writing to "<name>.json" and immediately
// replaces any existing file with an empty record set. A failed initial
// write is logged; later appends retry the write.
func NewRecorder(storage sitecrawl.Storage, name string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Recorder{
		storage: storage,
		file:    name + ".json",
		logger:  logger,
	}
	if err := r.save(); err != nil {
		r.logger.Error("failed to persist records", "path", r.Path(), "err", err)
	}
	return r
}

// Append stores rec under the next key and rewrites the file.
// The record stays in memory even if the write fails.
func (r *Recorder) Append(rec sitecrawl.Record) (string, error) {
	key := strconv.Itoa(len(r.records))
	r.records = append(r.records, rec)
	return key, r.save()
}

// Len returns the number of stored records.
func (r *Recorder) Len() int {
	return len(r.records)
}

// Records returns the stored records in insertion order.
func (r *Recorder) Records() []sitecrawl.Record {
	return append([]sitecrawl.Record(nil), r.records...)
}

// Path returns the location of the record file.
func (r *Recorder) Path() string {
	return r.storage.Path(r.file)
}

// MarshalJSON encodes all records as a single ordered JSON object.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rec := range r.records {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := sitecrawl.MarshalJSONValue(rec)
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(i)))
		buf.WriteByte(':')
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Recorder) save() error {
	compact, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return err
	}
	return r.storage.WriteFile(r.file, out.Bytes())
}
