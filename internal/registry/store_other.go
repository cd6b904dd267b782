//go:build !windows

package registry

type systemStore struct{}

// NewSystemStore returns a store that refuses every key outside windows.
func NewSystemStore() Store {
	return systemStore{}
}

func (systemStore) OpenKey(_ string) (Key, error) {
	return nil, ErrUnsupportedPlatform
}
