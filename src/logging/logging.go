// Package logging builds the process-wide structured logger.
package logging

import "go.uber.org/zap"

// New returns a console logger at the given level. Unknown levels fall back
// to info. "debug" also switches to the development config for readable
// caller annotations while poking at the pipeline.
func New(level string) *zap.Logger {
	var cfg zap.Config
	if level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
	}
	lv, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lv = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lv
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
