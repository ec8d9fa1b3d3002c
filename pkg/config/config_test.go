package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	src := MapSource{"SET": "value", "BLANK": "   ", "PADDED": "  x  "}

	assert.Equal(t, "value", GetString(src, "SET", "def"))
	assert.Equal(t, "def", GetString(src, "BLANK", "def"))
	assert.Equal(t, "def", GetString(src, "MISSING", "def"))
	assert.Equal(t, "x", GetString(src, "PADDED", "def"))
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name    string
		src     MapSource
		want    int
		wantErr bool
	}{
		{name: "missing uses default", src: MapSource{}, want: 5},
		{name: "valid integer", src: MapSource{"N": "12"}, want: 12},
		{name: "negative integer parses", src: MapSource{"N": "-1"}, want: -1},
		{name: "not an integer", src: MapSource{"N": "five"}, want: 5, wantErr: true},
		{name: "float is rejected", src: MapSource{"N": "2.5"}, want: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetInt(tt.src, "N", 5)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "N")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDuration(t *testing.T) {
	src := MapSource{"OK": "30s", "BAD": "soon", "ZERO": "0s"}

	assert.Equal(t, 30*time.Second, GetDuration(src, "OK", time.Minute, ValidatePositiveDuration))
	assert.Equal(t, time.Minute, GetDuration(src, "BAD", time.Minute, ValidatePositiveDuration))
	assert.Equal(t, time.Minute, GetDuration(src, "ZERO", time.Minute, ValidatePositiveDuration))
	assert.Equal(t, time.Duration(0), GetDuration(src, "ZERO", time.Minute, nil))
	assert.Equal(t, time.Minute, GetDuration(src, "MISSING", time.Minute, nil))
}

func TestLayered_FirstHitWins(t *testing.T) {
	src := Layered{
		MapSource{"A": "first", "B": ""},
		nil,
		MapSource{"A": "second", "B": "only-second"},
	}

	v, ok := src.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = src.Lookup("B")
	assert.True(t, ok)
	assert.Equal(t, "only-second", v)

	_, ok = src.Lookup("C")
	assert.False(t, ok)
}

func TestEnvSource(t *testing.T) {
	t.Setenv("NEWS_DIGEST_TEST_KEY", "from-env")

	v, ok := EnvSource{}.Lookup("NEWS_DIGEST_TEST_KEY")
	assert.True(t, ok)
	assert.Equal(t, "from-env", v)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "digest.yaml")
	content := "SCRAPE_API_KEY: fc-123\nDEFAULT_LIMIT: 3\nDENY: true\nRATE: 1.5\nEMPTY:\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	src, err := LoadYAMLFile(path)
	require.NoError(t, err)

	assert.Equal(t, MapSource{
		"SCRAPE_API_KEY": "fc-123",
		"DEFAULT_LIMIT":  "3",
		"DENY":           "true",
		"RATE":           "1.5",
		"EMPTY":          "",
	}, src)
}

func TestLoadYAMLFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadYAMLFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	nested := filepath.Join(dir, "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("LLM:\n  MODEL: x\n"), 0o600))
	_, err = LoadYAMLFile(nested)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a scalar")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("- a\n- b\n"), 0o600))
	_, err = LoadYAMLFile(broken)
	assert.Error(t, err)
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 7 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/30 * * * 1-5"))
	assert.Error(t, ValidateCronSchedule(""))
	assert.Error(t, ValidateCronSchedule("every morning"))
	assert.Error(t, ValidateCronSchedule("0 0 7 * * *"))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(1, 1, 10))
	assert.NoError(t, ValidateIntRange(10, 1, 10))
	assert.Error(t, ValidateIntRange(0, 1, 10))
	assert.Error(t, ValidateIntRange(11, 1, 10))
	assert.Error(t, ValidateIntRange(5, 10, 1))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
