// Package storage rewrites the identity fields of the host application's
// storage.json.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
)

const (
	TelemetryKey = "telemetry"

	MachineIDKey    = "machineId"
	MacMachineIDKey = "macMachineId"
	DevDeviceIDKey  = "devDeviceId"
	SqmIDKey        = "sqmId"
)

type Mutator struct {
	Fs   afero.Fs
	Sink message.Sink
}

func NewMutator(fs afero.Fs, sink message.Sink) *Mutator {
	return &Mutator{Fs: fs, Sink: sink}
}

// Update overwrites the four identity fields under "telemetry" and writes
// every other value back with its original bytes. Nothing is written unless
// the document parses to an object. If the write fails the original bytes are put back; when that
// also fails the error wraps ErrUnrecoverable.
func (m *Mutator) Update(path string, ids identity.Set) error {
	info, err := m.Fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.Sink.Error("Config file not found: %s", path)
			m.Sink.Warning("Please install and run the application once before using this tool")
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}

	original, err := afero.ReadFile(m.Fs, path)
	if err != nil {
		m.Sink.Error("Failed to read config file %s: %v", path, err)
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	doc, err := Decode(original)
	if err != nil {
		m.Sink.Error("Failed to parse config file %s: %v", path, err)
		return fmt.Errorf("failed to parse '%s': %w", path, err)
	}

	if _, ok := doc.(map[string]any); !ok {
		m.Sink.Error("Config root in %s is not a JSON object, cannot set %s", path, TelemetryKey)
		return fmt.Errorf("%w: %s", ErrNotObject, path)
	}

	root, _, err := decodeObject(original)
	if err != nil {
		m.Sink.Error("Failed to parse config file %s: %v", path, err)
		return fmt.Errorf("failed to parse '%s': %w", path, err)
	}

	telemetry, ok, err := decodeObject(root[TelemetryKey])
	if err != nil {
		m.Sink.Error("Failed to parse %s in %s: %v", TelemetryKey, path, err)
		return fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	if !ok {
		telemetry = map[string]json.RawMessage{}
	}
	for key, value := range map[string]string{
		MachineIDKey:    ids.MachineID,
		MacMachineIDKey: ids.MacMachineID,
		DevDeviceIDKey:  ids.DevDeviceID,
		SqmIDKey:        ids.SqmID,
	} {
		encoded, err := Encode(value)
		if err != nil {
			return err
		}
		telemetry[key] = encoded
	}

	encodedTelemetry, err := Encode(telemetry)
	if err != nil {
		m.Sink.Error("Failed to serialize %s for %s: %v", TelemetryKey, path, err)
		return err
	}
	root[TelemetryKey] = encodedTelemetry

	updated, err := Encode(root)
	if err != nil {
		m.Sink.Error("Failed to serialize config for %s: %v", path, err)
		return err
	}

	if err := afero.WriteFile(m.Fs, path, updated, info.Mode().Perm()); err != nil {
		m.Sink.Error("Failed to write updated config to %s: %v", path, err)
		if restoreErr := afero.WriteFile(m.Fs, path, original, info.Mode().Perm()); restoreErr != nil {
			m.Sink.Error("Severe: could not restore the original content of %s after the write error: %v", path, restoreErr)
			return fmt.Errorf("%w: %s: %w", ErrUnrecoverable, path, restoreErr)
		}
		m.Sink.Warning("Original content of %s was restored", path)
		return fmt.Errorf("%w '%s': %w", ErrWrite, path, err)
	}

	m.Sink.Success("Config file %s updated successfully", path)
	return nil
}
