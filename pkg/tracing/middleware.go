package tracing

import (
	"context"
	"net/http"
)

// HTTPMiddleware returns a net/http middleware that opens a root scope for
// every incoming request. The scope is named "METHOD /path", tagged with the
// request method and path, released when the handler returns (panics
// included), and the resulting TracingContext is made available to handler
// code through the request context:
//
//	mux.Handle("/search", tracing.HTTPMiddleware(builder)(searchHandler))
//
//	func searchHandler(w http.ResponseWriter, r *http.Request) {
//	    span := tracing.SpanFromContext(r.Context())
//	    // span.TraceID(), span.Child(...), ...
//	}
//
// A backend failure while opening the scope degrades to serving the request
// untraced; tracing problems never take down request handling.
func HTTPMiddleware(builder *Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operationName := r.Method + " " + r.URL.Path
			tags := TagSet{
				"http.method": r.Method,
				"http.path":   r.URL.Path,
			}

			served := false
			err := builder.Build(r.Context(), operationName, tags, func(ctx context.Context, _ *TracingContext) error {
				served = true
				next.ServeHTTP(w, r.WithContext(ctx))
				return nil
			})
			if err != nil && !served {
				next.ServeHTTP(w, r)
			}
		})
	}
}
