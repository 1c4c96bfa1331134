package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_FLOAT", "2.5")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BAD_BOOL", "yes please")
	t.Setenv("TEST_DURATION", "20s")
	t.Setenv("TEST_BAD_DURATION", "20")
	t.Setenv("TEST_LIST", " a, ,b ,c")
	t.Setenv("TEST_EMPTY_LIST", " , ")

	assert.Equal(t, "value", GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("TEST_UNSET", "default"))

	assert.Equal(t, 42, GetEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TEST_BAD_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TEST_UNSET", 1))

	assert.Equal(t, 2.5, GetEnvFloat("TEST_FLOAT", 1))
	assert.Equal(t, 1.0, GetEnvFloat("TEST_STRING", 1))

	assert.True(t, GetEnvBool("TEST_BOOL", false))
	assert.False(t, GetEnvBool("TEST_BAD_BOOL", false))

	assert.Equal(t, 20*time.Second, GetEnvDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_BAD_DURATION", time.Minute))

	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvStringList("TEST_EMPTY_LIST", []string{"x"}))
}

func TestValidateCronSchedule(t *testing.T) {
	for _, ok := range []string{"@every 1m", "*/5 * * * *", "30 5 * * *", "@hourly"} {
		assert.NoError(t, ValidateCronSchedule(ok), ok)
	}
	for _, bad := range []string{"", "every minute", "* * *", "61 * * * *"} {
		assert.Error(t, ValidateCronSchedule(bad), bad)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestValidateRanges(t *testing.T) {
	assert.NoError(t, ValidateIntRange(5, 1, 10))
	assert.Error(t, ValidateIntRange(0, 1, 10))
	assert.Error(t, ValidateIntRange(11, 1, 10))
	assert.Error(t, ValidateIntRange(5, 10, 1))

	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))

	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
}
