// Package logx configures homework-bot's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//
// Levels and sinks are hot-swappable via Service.Apply, so a config reload
// can change verbosity without restarting the poller.
package logx
