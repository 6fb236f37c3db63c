package mock

import "github.com/fwojciec/sitecrawl"

var _ sitecrawl.Storage = (*Storage)(nil)

// Storage is a mock implementation of sitecrawl.Storage.
type Storage struct {
	WriteFileFn func(name string, data []byte) error
	ReadFileFn  func(name string) ([]byte, error)
	PathFn      func(name string) string
}

func (s *Storage) WriteFile(name string, data []byte) error {
	return s.WriteFileFn(name, data)
}

func (s *Storage) ReadFile(name string) ([]byte, error) {
	return s.ReadFileFn(name)
}

func (s *Storage) Path(name string) string {
	return s.PathFn(name)
}

// MemStorage returns a Storage backed by files, recording every write.
// Writes to names listed in failing return an error and leave files
// unchanged.
func MemStorage(files map[string]string, failing ...string) *Storage {
	fail := make(map[string]bool)
	for _, name := range failing {
		fail[name] = true
	}
	return &Storage{
		WriteFileFn: func(name string, data []byte) error {
			if fail[name] {
				return sitecrawl.Errorf(sitecrawl.EINTERNAL, "write %s failed", name)
			}
			files[name] = string(data)
			return nil
		},
		ReadFileFn: func(name string) ([]byte, error) {
			data, ok := files[name]
			if !ok {
				return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "%s does not exist", name)
			}
			return []byte(data), nil
		},
		PathFn: func(name string) string {
			return "mem/" + name
		},
	}
}
