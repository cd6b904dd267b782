package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Load returns the stored history, or an empty one when nothing was saved yet.
func (s Store) Load() (*History, error) {
	content, err := afero.ReadFile(s.Fs, s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var history History
	if err := yaml.Unmarshal(content, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history file: %w", err)
	}
	return &history, nil
}
