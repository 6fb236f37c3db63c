package sitecrawl

// FieldFunc extracts one value from a page. The optional message is an
// annotation shown alongside the default "Get <field>: <value>" line.
type FieldFunc func(url string, doc *Document) (value any, msg string, err error)

// Field is a named field extraction function.
type Field struct {
	Name string
	Fn   FieldFunc
}

// NewField returns a Field.
func NewField(name string, fn FieldFunc) Field {
	return Field{Name: name, Fn: fn}
}

// Extractor is a named bundle of field extraction functions.
// Fields are run in the order returned, which must not change over the
// lifetime of the extractor.
type Extractor interface {
	Name() string
	Fields() []Field
}

// RecordStore persists the records produced by one extractor.
type RecordStore interface {
	// Append stores rec under the next key and returns that key.
	// The record is kept in memory even if persisting it fails.
	Append(rec Record) (key string, err error)

	// Len returns the number of records stored.
	Len() int
}

// Ensure FieldSet implements Extractor at compile time.
var _ Extractor = (*FieldSet)(nil)

// FieldSet is an Extractor built from an explicit list of fields.
type FieldSet struct {
	name   string
	fields []Field
}

// NewFieldSet returns an extractor named name that runs fields in order.
// Returns EINVALID if the name is empty, or a field is unnamed, duplicated,
// or has no function.
func NewFieldSet(name string, fields ...Field) (*FieldSet, error) {
	s := &FieldSet{name: name, fields: append([]Field(nil), fields...)}
	if err := ValidateExtractor(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the extractor name.
func (s *FieldSet) Name() string { return s.name }

// Fields returns a copy of the field list.
func (s *FieldSet) Fields() []Field { return append([]Field(nil), s.fields...) }

// ValidateExtractor checks that ex has a name and a usable field list.
func ValidateExtractor(ex Extractor) error {
	if ex == nil {
		return Errorf(EINVALID, "extractor required")
	}
	if ex.Name() == "" {
		return Errorf(EINVALID, "extractor name required")
	}
	seen := make(map[string]bool)
	for i, f := range ex.Fields() {
		if f.Name == "" {
			return Errorf(EINVALID, "extractor %q: field %d has no name", ex.Name(), i)
		}
		if f.Fn == nil {
			return Errorf(EINVALID, "extractor %q: field %q has no function", ex.Name(), f.Name)
		}
		if seen[f.Name] {
			return Errorf(EINVALID, "extractor %q: duplicate field %q", ex.Name(), f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
