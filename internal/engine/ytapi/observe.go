package ytapi

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the OTel tracer used when WithObservability gets a nil tracer.
const tracerName = "go_youtube.ytapi"

// WithObservability wraps next with one span per call ("ytapi.<op>") and
// Prometheus call/duration metrics. A nil tracer uses the global provider.
func WithObservability(next Client, tracer trace.Tracer) Client {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return callFunc(func(ctx context.Context, op Operation, part string, params Params) (Response, error) {
		ctx, span := tracer.Start(ctx, "ytapi."+string(op),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("ytapi.op", string(op)),
				attribute.String("ytapi.part", part),
			),
		)
		defer span.End()

		start := time.Now()
		resp, err := Invoke(ctx, next, op, part, params)
		elapsed := time.Since(start)

		if err != nil {
			kind := KindOf(err)
			if kind == "" {
				kind = KindUnexpected
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, string(kind))
			span.SetAttributes(attribute.String("ytapi.error_kind", string(kind)))
			engine.ObserveAPICall(string(op), string(kind), elapsed)
			return nil, err
		}

		span.SetAttributes(
			attribute.Int("ytapi.items", len(resp.Items())),
			attribute.Bool("ytapi.has_next", resp.NextPageToken() != ""),
		)
		span.SetStatus(codes.Ok, "")
		engine.ObserveAPICall(string(op), "ok", elapsed)
		return resp, nil
	})
}
