// Package logx configures releasebot's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep
// console output readable (short timestamp + short caller) in CI logs.
// The process is one-shot, so there is no sink reconfiguration at runtime.
package logx
