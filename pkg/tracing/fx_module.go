package tracing

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the tracing package.
// This module integrates the tracing Builder into an Fx-based application by
// providing the backend and Builder factories and registering lifecycle hooks
// for a clean shutdown of the OpenTelemetry provider.
//
// Usage:
//
//	app := fx.New(
//	    tracing.FXModule,
//	    fx.Provide(func() tracing.Config {
//	        return tracing.Config{
//	            ServiceName: "search-store",
//	            Backend:     tracing.BackendOTel,
//	            EnableExport: true,
//	        }
//	    }),
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A tracing.Config instance must be available in the dependency injection container
// - A tracing.Logger implementation must be available in the dependency injection container
var FXModule = fx.Module("tracing",
	fx.Provide(
		NewBackend,
		NewBuilder,
	),
	fx.Invoke(RegisterTracingLifecycle),
)

// NewBackend constructs the backend variant selected by cfg.Backend.
// Unknown or empty values fall back to the no-op backend so that an
// unconfigured application keeps working without traces.
func NewBackend(cfg Config, logger Logger) (Backend, error) {
	switch cfg.Backend {
	case BackendOTel:
		return NewOTelBackend(cfg, logger)
	case BackendLogging:
		return NewLoggingBackend(logger, cfg), nil
	default:
		return NewNoOpBackend(), nil
	}
}

// RegisterTracingLifecycle registers shutdown hooks for the tracing backend
// with the FX lifecycle. For the OpenTelemetry backend this flushes pending
// spans to the exporter; the other variants hold no resources and need no
// shutdown.
func RegisterTracingLifecycle(lc fx.Lifecycle, backend Backend, logger Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			otelBackend, ok := backend.(*OTelBackend)
			if !ok {
				return nil
			}
			logger.Info("shutting down tracing backend...", nil, nil)
			return otelBackend.Shutdown(ctx)
		},
	})
}
