// Package logger provides feature-stage logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// FeatureLogger provides dedicated logging for the feature stage.
type FeatureLogger struct {
	*logrus.Entry
}

// NewFeatureLogger creates a new feature logger.
func NewFeatureLogger(baseLogger *logrus.Logger) *FeatureLogger {
	return &FeatureLogger{
		Entry: baseLogger.WithField("component", "features"),
	}
}

// LogLeagueLoaded logs the league averages derived from team stats.
func (fl *FeatureLogger) LogLeagueLoaded(teams int, avgPace, avgDefRating float64) {
	fl.WithFields(logrus.Fields{
		"teams":             teams,
		"league_avg_pace":   avgPace,
		"league_avg_defrtg": avgDefRating,
	}).Info("League context loaded")
}

// LogPropDropped logs a raw prop that could not be joined to player data.
func (fl *FeatureLogger) LogPropDropped(player, market, reason string) {
	fl.WithFields(logrus.Fields{
		"player": player,
		"market": market,
		"reason": reason,
	}).Warn("Prop dropped from feature build")
}

// LogUnmatchedTeam logs a player whose team is not part of the listed game.
func (fl *FeatureLogger) LogUnmatchedTeam(player, team, home, away string) {
	fl.WithFields(logrus.Fields{
		"player":    player,
		"team":      team,
		"home_team": home,
		"away_team": away,
	}).Debug("Player team not in game, using league averages")
}

// LogFeaturesBuilt logs completion of a feature build.
func (fl *FeatureLogger) LogFeaturesBuilt(props, built, dropped int, cacheRatio float64) {
	fl.WithFields(logrus.Fields{
		"props_in":        props,
		"props_built":     built,
		"props_dropped":   dropped,
		"cache_hit_ratio": cacheRatio,
	}).Info("Features built")
}
