package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// routeLabel keeps label cardinality bounded: the mux records the matched
// pattern on the request, unmatched paths collapse into one label.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

// RequestMiddleware records request metrics per route pattern and writes an
// access line to the log of the request's method type.
func RequestMiddleware(metrics MetricsProviderInterface, logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		route := routeLabel(r)
		metrics.IncRequestsTotal(route, sw.status)
		metrics.ObserveRequestDuration(route, duration)

		logType := GetLogTypeByRequestType(r.Method)
		if sw.status >= http.StatusInternalServerError {
			logger.Warnf(logType, "%s %s -> %d (%d bytes) in %s", r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration)
			return
		}
		logger.Debugf(logType, "%s %s -> %d (%d bytes) in %s", r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration)
	})
}
