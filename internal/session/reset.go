package session

import (
	"fmt"
)

// Reset deletes the stored history.
func (s Store) Reset() error {
	if err := s.Fs.RemoveAll(s.Path()); err != nil {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}
