package platform

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

var ErrVersionNotFound = errors.New("application package.json not found")

// AppVersion reads "version" from the first candidate package.json that
// exists.
func AppVersion(fs afero.Fs, candidates []string) (version, path string, err error) {
	for _, candidate := range candidates {
		exists, err := afero.Exists(fs, candidate)
		if err != nil || !exists {
			continue
		}

		content, err := afero.ReadFile(fs, candidate)
		if err != nil {
			return "", candidate, fmt.Errorf("failed to read '%s': %w", candidate, err)
		}
		var pkg struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(content, &pkg); err != nil {
			return "", candidate, fmt.Errorf("failed to parse '%s': %w", candidate, err)
		}
		if pkg.Version == "" {
			return "", candidate, fmt.Errorf("no version in '%s'", candidate)
		}
		return pkg.Version, candidate, nil
	}
	return "", "", ErrVersionNotFound
}
