// Package log builds the slog loggers used by navi.
//
// SecureHandler wraps any slog.Handler and removes credentials before a
// record is written: attributes whose key names a secret, values that look
// like a bearer header, and Notion integration tokens ("secret_..." and
// "ntn_...") embedded anywhere in a string or error value.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request failed", "error", err) // tokens inside err are masked
package log
