// Package logging provides structured logging configuration for soapkit.
//
// This package wraps log/slog to provide consistent logging across all
// soapkit components. It supports configurable log levels and output
// formats.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("connected", "endpoint", url)
//	logger.Error("request failed", "error", err)
//
// # Report lines
//
// Keyword-driven test runners embed log output in an HTML report. Records
// written with InfoHTML carry an "html" attribute so a report renderer can
// pass the message through as markup instead of escaping it:
//
//	logging.InfoHTML(logger, "<b>Response from webservice:</b>")
//
// # Integration
//
// Components accept a *slog.Logger in their constructor. If no logger is
// provided, logging.Or substitutes a no-op logger.
package logging
