package orchestration

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracerOnce sync.Once
	tracer     trace.Tracer
)

// getTracer lazily resolves the package tracer so that the host process can
// install its global TracerProvider before first use. Without a provider
// the returned tracer is a no-op and the spans cost nothing.
func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		tracer = otel.Tracer("github.com/agbru/harmcalc/internal/orchestration")
	})
	return tracer
}
