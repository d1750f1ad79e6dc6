// Package logger provides structured logging functionality for Go applications.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, and distributed
// tracing integration. It integrates with the fx dependency injection
// framework for easy incorporation into applications.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warn, Error, Fatal)
//   - Context-aware logging correlated with the tracing package
//   - Automatic trace and span ID extraction from context
//   - JSON output suitable for common log collection systems
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/tracing/pkg/logger"
//
//	// Create a new logger using factory
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "user-service",
//		EnableTracing: true,
//	})
//
//	// Log with structured fields (without context)
//	log.Info("User logged in", nil, map[string]interface{}{
//		"user_id": "12345",
//		"ip":      "192.168.1.1",
//	})
//
//	// Log with trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "Processing request", nil, map[string]interface{}{
//		"request_id": "abc-123",
//	})
//
// FX Module Integration:
//
// This package provides an fx module for easy integration with applications
// using the fx dependency injection framework:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Configuration:
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_ENABLE_TRACING=true      # Enable distributed tracing integration
//
// Tracing Integration:
//
// When tracing is enabled (EnableTracing: true), the *WithContext logging
// methods extract the active tracing scope from the context and include its
// identifiers in the log entry:
//   - trace_id: The trace identifier of the active scope
//   - span_id: The span identifier of the active scope
//
// The integration works uniformly across all tracing backends. The logging
// backend produces synthetic but valid identifiers; the no-op backend yields
// empty identifiers, which are omitted from the entry.
//
// Thread Safety:
//
// All methods on the Logger are safe for concurrent use by multiple
// goroutines.
package logger
