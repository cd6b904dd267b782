package identity

import (
	"encoding/hex"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	standardMachineIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	sqmIDRegex             = regexp.MustCompile(`^\{[0-9A-F]{32}\}$`)
	uuidV4Regex            = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func TestNewStandardMachineID(t *testing.T) {
	for range 500 {
		id := NewStandardMachineID()
		require.Len(t, id, 36)
		assert.Regexp(t, standardMachineIDRegex, id)
		assert.Equal(t, byte('4'), id[14])
		assert.Contains(t, variantDigits, string(id[19]))
	}
}

func TestNewSqmID(t *testing.T) {
	for range 500 {
		id := NewSqmID()
		require.Len(t, id, 34)
		assert.True(t, strings.HasPrefix(id, "{"))
		assert.True(t, strings.HasSuffix(id, "}"))
		assert.Regexp(t, sqmIDRegex, id)
	}
}

func TestNewDeviceID(t *testing.T) {
	id := NewDeviceID()
	assert.Regexp(t, uuidV4Regex, id)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNewTelemetryMachineID(t *testing.T) {
	prefix := hex.EncodeToString([]byte(DefaultTelemetryPrefix))
	assert.Equal(t, "61757468307c757365725f", prefix)

	id := NewTelemetryMachineID(DefaultTelemetryPrefix)
	require.True(t, strings.HasPrefix(id, prefix))
	random := strings.TrimPrefix(id, prefix)
	assert.Len(t, random, telemetryRandomLength)
	assert.Regexp(t, `^[0-9a-z]+$`, random)
}

func TestGeneratorProducesIndependentValues(t *testing.T) {
	g := NewGenerator("")
	assert.Equal(t, DefaultTelemetryPrefix, g.TelemetryPrefix)

	first := g.New()
	second := g.New()

	for _, set := range []Set{first, second} {
		assert.NotEmpty(t, set.MachineID)
		assert.Regexp(t, standardMachineIDRegex, set.MacMachineID)
		assert.Regexp(t, uuidV4Regex, set.DevDeviceID)
		assert.Regexp(t, sqmIDRegex, set.SqmID)
	}

	assert.NotEqual(t, first.MachineID, second.MachineID)
	assert.NotEqual(t, first.MacMachineID, second.MacMachineID)
	assert.NotEqual(t, first.DevDeviceID, second.DevDeviceID)
	assert.NotEqual(t, first.SqmID, second.SqmID)
}

func TestCustomTelemetryPrefix(t *testing.T) {
	g := NewGenerator("abc")
	set := g.New()
	assert.True(t, strings.HasPrefix(set.MachineID, "616263"))
	assert.Len(t, set.MachineID, 6+telemetryRandomLength)
}
