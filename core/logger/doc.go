// Package logger provides structured operational logging for digenv using
// uber/zap.
//
// Logs go to stderr because stdout belongs to the pager. The default level is
// warn, so a normal run prints nothing beyond the diagnostics the pipeline
// writes itself. Two encodings are available:
//   - Production: JSON lines for machine parsing
//   - Development: console output for humans
//
// Every pipeline run gets its own logger carrying a run_id field:
//
//	log := logger.NewDefault().ForRun()
//	log.Debug("stage started", zap.String("role", "sort"), zap.Int("pid", pid))
package logger
