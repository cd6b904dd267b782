package session

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

func (s Store) Save(history *History) error {
	err := s.Fs.MkdirAll(s.Dir, 0700)
	if err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	content, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := afero.WriteFile(s.Fs, s.Path(), content, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}
