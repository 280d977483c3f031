package storage

import "fmt"

// Backend kinds selectable from configuration
const (
	KindOS    = "os"
	KindBilly = "billy"
)

// Open creates a backend of the given kind rooted at rootPath
func Open(kind, rootPath string) (Backend, error) {
	switch kind {
	case "", KindOS:
		local, err := NewLocal(rootPath)
		if err != nil {
			return nil, err
		}
		return local, nil
	case KindBilly:
		b, err := NewBillyOS(rootPath)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s (use: os, billy)", kind)
	}
}
