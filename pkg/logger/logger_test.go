package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.warn)
	assert.NotNil(t, logger.error)
}

func TestLogger_Levels(t *testing.T) {
	logger := New()

	// None of the levels should panic
	logger.Info("payment recorded: tx=%s", "0xabc")
	logger.Warn("subscription close to expiry: %s", "sub-1")
	logger.Error("chain verification failed: %v", "no receipt")
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()

	logger.Info("user %s subscribed to creator %s for %d days", "u-1", "c-1", 30)
	logger.Error("failed to record payment %s: %s", "0xdef", "already recorded")
}
