package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCycleConfig(t *testing.T) {
	config := DefaultCycleConfig()

	assert.Equal(t, 1500*time.Second, config.WorkDuration)
	assert.Equal(t, 25*time.Minute, config.WorkDuration)
	assert.Equal(t, 300*time.Second, config.BreakDuration)
	assert.Equal(t, 5*time.Minute, config.BreakDuration)
	assert.Equal(t, 10*time.Second, config.NotificationTimeout)
	assert.Len(t, config.Ideas, 5)
	assert.Equal(t, DefaultIdeas, config.Ideas)
}

func TestDefaultCycleConfig_IdeasAreCopied(t *testing.T) {
	config := DefaultCycleConfig()
	config.Ideas[0] = "changed"

	assert.NotEqual(t, "changed", DefaultIdeas[0])
}
