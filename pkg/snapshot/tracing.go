package snapshot

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("snapshot-store")

// StoreWithTracing wraps a Store with OpenTelemetry spans
type StoreWithTracing struct {
	inner Store
}

// NewStoreWithTracing creates a tracing decorator around any snapshot store
func NewStoreWithTracing(inner Store) *StoreWithTracing {
	return &StoreWithTracing{inner: inner}
}

func (s *StoreWithTracing) Load(ctx context.Context, key string, v any) error {
	ctx, span := tracer.Start(ctx, "snapshot.Load",
		trace.WithAttributes(attribute.String("snapshot.key", key)),
	)
	defer span.End()

	err := s.inner.Load(ctx, key, v)
	if err != nil && err != ErrNotFound {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Bool("snapshot.found", err == nil))
	return err
}

func (s *StoreWithTracing) Save(ctx context.Context, key string, v any) error {
	ctx, span := tracer.Start(ctx, "snapshot.Save",
		trace.WithAttributes(attribute.String("snapshot.key", key)),
	)
	defer span.End()

	err := s.inner.Save(ctx, key, v)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *StoreWithTracing) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "snapshot.Delete",
		trace.WithAttributes(attribute.String("snapshot.key", key)),
	)
	defer span.End()

	err := s.inner.Delete(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *StoreWithTracing) Close() error {
	return s.inner.Close()
}
