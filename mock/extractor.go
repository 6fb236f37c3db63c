package mock

import "github.com/fwojciec/sitecrawl"

var _ sitecrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitecrawl.Extractor.
type Extractor struct {
	NameFn   func() string
	FieldsFn func() []sitecrawl.Field
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

func (e *Extractor) Fields() []sitecrawl.Field {
	return e.FieldsFn()
}

var _ sitecrawl.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of sitecrawl.RecordStore.
type RecordStore struct {
	AppendFn func(rec sitecrawl.Record) (string, error)
	LenFn    func() int
}

func (s *RecordStore) Append(rec sitecrawl.Record) (string, error) {
	return s.AppendFn(rec)
}

func (s *RecordStore) Len() int {
	return s.LenFn()
}
