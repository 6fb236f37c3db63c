package sitecrawl

// Storage is a scoped directory that crawl state is persisted into.
// Every write replaces the whole file.
type Storage interface {
	// WriteFile replaces the named file with data.
	WriteFile(name string, data []byte) error

	// ReadFile returns the contents of the named file.
	// Returns ENOTFOUND if the file does not exist.
	ReadFile(name string) ([]byte, error)

	// Path returns the location of the named file for display.
	Path(name string) string
}
