// Package identity generates the device identity fields the host application
// persists in its telemetry section.
package identity

import (
	"encoding/hex"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultTelemetryPrefix = "auth0|user_"

	standardMachineIDTemplate = "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"
	telemetryRandomLength     = 32

	hexDigits      = "0123456789abcdef"
	variantDigits  = "89ab"
	telemetryChars = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Set holds one run's worth of identifiers. Every field is generated
// independently.
type Set struct {
	MachineID    string `json:"machineId" yaml:"machineId"`
	MacMachineID string `json:"macMachineId" yaml:"macMachineId"`
	DevDeviceID  string `json:"devDeviceId" yaml:"devDeviceId"`
	SqmID        string `json:"sqmId" yaml:"sqmId"`
}

type Generator struct {
	// TelemetryPrefix is hex encoded in front of the random part of MachineID.
	TelemetryPrefix string
}

func NewGenerator(telemetryPrefix string) Generator {
	if telemetryPrefix == "" {
		telemetryPrefix = DefaultTelemetryPrefix
	}
	return Generator{TelemetryPrefix: telemetryPrefix}
}

func (g Generator) New() Set {
	return Set{
		MachineID:    NewTelemetryMachineID(g.TelemetryPrefix),
		MacMachineID: NewStandardMachineID(),
		DevDeviceID:  NewDeviceID(),
		SqmID:        NewSqmID(),
	}
}

// NewStandardMachineID fills the UUID v4 template with lowercase hex digits.
// The version position is always 4 and the variant position one of 8, 9, a, b.
func NewStandardMachineID() string {
	var sb strings.Builder
	sb.Grow(len(standardMachineIDTemplate))
	for _, c := range standardMachineIDTemplate {
		switch c {
		case 'x':
			sb.WriteByte(hexDigits[rand.IntN(len(hexDigits))])
		case 'y':
			sb.WriteByte(variantDigits[rand.IntN(len(variantDigits))])
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func NewDeviceID() string {
	return uuid.NewString()
}

// NewTelemetryMachineID returns hex(prefix) followed by 32 random lowercase
// letters and digits.
func NewTelemetryMachineID(prefix string) string {
	var sb strings.Builder
	sb.WriteString(hex.EncodeToString([]byte(prefix)))
	for range telemetryRandomLength {
		sb.WriteByte(telemetryChars[rand.IntN(len(telemetryChars))])
	}
	return sb.String()
}

// NewSqmID renders a random UUID as {XXXXXXXX...} with no separators.
func NewSqmID() string {
	id := uuid.New()
	return "{" + strings.ToUpper(hex.EncodeToString(id[:])) + "}"
}
