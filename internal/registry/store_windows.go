//go:build windows

package registry

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type systemStore struct{}

// NewSystemStore returns the machine registry.
func NewSystemStore() Store {
	return systemStore{}
}

func (systemStore) OpenKey(path string) (Key, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE|registry.SET_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return nil, fmt.Errorf("failed to open HKEY_LOCAL_MACHINE\\%s: %w", path, err)
	}
	return systemKey{k: k}, nil
}

type systemKey struct {
	k registry.Key
}

func (s systemKey) GetString(name string) (string, error) {
	value, _, err := s.k.GetStringValue(name)
	if err != nil {
		return "", fmt.Errorf("failed to read value %s: %w", name, err)
	}
	return value, nil
}

func (s systemKey) SetString(name, value string) error {
	if err := s.k.SetStringValue(name, value); err != nil {
		return fmt.Errorf("failed to set value %s: %w", name, err)
	}
	return nil
}

func (s systemKey) Close() error {
	return s.k.Close()
}
