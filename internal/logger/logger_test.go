package logger

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLevels(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.InfoLevel,
	}

	for input, want := range cases {
		Initialize(input)
		assert.Equal(t, want, Get().GetLevel(), "level %q", input)
	}
}

func TestGetInitializesLazily(t *testing.T) {
	Logger = nil
	assert.NotNil(t, Get())
	assert.NotNil(t, Repository("event"))
	assert.NotNil(t, Handler("activity"))
}
