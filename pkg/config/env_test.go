package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("FC_TEST_STRING", "  value ")
	assert.Equal(t, "value", GetEnvString("FC_TEST_STRING", "def"))

	t.Setenv("FC_TEST_STRING", "")
	assert.Equal(t, "def", GetEnvString("FC_TEST_STRING", "def"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "42", want: 42},
		{name: "padded", value: " 12 ", want: 12},
		{name: "invalid falls back", value: "abc", want: 7},
		{name: "trailing garbage falls back", value: "12abc", want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FC_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("FC_TEST_INT", 7))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("FC_TEST_FLOAT", "0.5")
	assert.InDelta(t, 0.5, GetEnvFloat("FC_TEST_FLOAT", 2), 1e-9)

	t.Setenv("FC_TEST_FLOAT", "fast")
	assert.InDelta(t, 2.0, GetEnvFloat("FC_TEST_FLOAT", 2), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("FC_TEST_BOOL", tt.value)
		assert.Equal(t, tt.want, GetEnvBool("FC_TEST_BOOL", true), "value %q", tt.value)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("FC_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("FC_TEST_DURATION", time.Minute))

	t.Setenv("FC_TEST_DURATION", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("FC_TEST_DURATION", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("FC_TEST_LIST", "10.0.0.0/8, ,192.168.0.0/16 ")
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.0/16"}, GetEnvStringList("FC_TEST_LIST", nil))

	t.Setenv("FC_TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("FC_TEST_LIST", []string{"x"}))
}

func TestIsSet(t *testing.T) {
	t.Setenv("FC_TEST_SET", " ")
	assert.False(t, IsSet("FC_TEST_SET"))
	t.Setenv("FC_TEST_SET", "1")
	assert.True(t, IsSet("FC_TEST_SET"))
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))

	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Minute, time.Hour, time.Second))

	assert.NoError(t, ValidateIntRange(5, 1, 10))
	assert.Error(t, ValidateIntRange(0, 1, 10))
}
