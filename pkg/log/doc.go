// Package log provides structured event logging for the connection
// orchestration subsystem.
//
// Components emit Events (state changes, connection phases, reconnection
// attempts, errors, radio changes) to a Logger. Applications choose the
// sink: FileLogger writes compact CBOR for later analysis with blelink-log,
// SlogAdapter forwards to log/slog for console output, MultiLogger fans out
// to several sinks, and NoopLogger disables logging entirely.
package log
