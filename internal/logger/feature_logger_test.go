package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureLoggerPropDropped(t *testing.T) {
	log, buf := setupTestLogger()
	featureLogger := NewFeatureLogger(log)

	featureLogger.LogPropDropped("Jalen Brunson", "points", "no_game_logs")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "features", logEntry["component"])
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "no_game_logs", logEntry["reason"])
}

func TestFeatureLoggerFeaturesBuilt(t *testing.T) {
	log, buf := setupTestLogger()
	featureLogger := NewFeatureLogger(log)

	featureLogger.LogFeaturesBuilt(40, 37, 3, 0.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(37), logEntry["props_built"])
	assert.Equal(t, float64(3), logEntry["props_dropped"])
	assert.Equal(t, 0.5, logEntry["cache_hit_ratio"])
}

func TestFeatureLoggerUnmatchedTeamIsDebug(t *testing.T) {
	log, buf := setupTestLogger()
	log.SetLevel(logrus.InfoLevel)
	featureLogger := NewFeatureLogger(log)

	featureLogger.LogUnmatchedTeam("Player", "Knicks", "Celtics", "Heat")

	assert.Empty(t, buf.String())
}
