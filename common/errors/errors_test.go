package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	assert.Nil(t, NewError(nil, UsageExitCode))

	err := NewError(fmt.Errorf("bad policy"), UsageExitCode)
	assert.Equal(t, UsageExitCode, err.GetExitCode())
	assert.EqualError(t, err, "bad policy")
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitCode(0), ExitCodeOf(nil))
	assert.Equal(t, ConfigExitCode, ExitCodeOf(NewError(fmt.Errorf("no servers"), ConfigExitCode)))
	assert.Equal(t, RunFailureExitCode, ExitCodeOf(fmt.Errorf("boom")))
}
