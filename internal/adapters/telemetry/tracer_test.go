package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/lineage/internal/adapters/telemetry"
	"go.trai.ch/lineage/internal/core/ports"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerFrom(provider, "test"), recorder
}

func attrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestOTelTracer_Start(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "freeze", ports.WithAttribute("path", "/repo/lineage.yaml"))
	span.SetAttribute("elements", 12)
	span.SetAttribute("versions", []string{"1.0", "2.0"})
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("cached", true)
	span.SetAttribute("bytes", int64(2048))
	span.SetAttribute("kind", struct{ Name string }{"model"})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "freeze", ended[0].Name())

	got := attrs(ended[0])
	assert.Equal(t, "/repo/lineage.yaml", got["path"].AsString())
	assert.Equal(t, int64(12), got["elements"].AsInt64())
	assert.Equal(t, []string{"1.0", "2.0"}, got["versions"].AsStringSlice())
	assert.InDelta(t, 0.5, got["ratio"].AsFloat64(), 0)
	assert.True(t, got["cached"].AsBool())
	assert.Equal(t, int64(2048), got["bytes"].AsInt64())
	assert.Equal(t, "{model}", got["kind"].AsString())
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, parent := tracer.Start(context.Background(), "project")
	_, child := tracer.Start(ctx, "project.version")
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "project.version", ended[0].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "project")
	tracer.EmitPlan(ctx, []string{"1.0", "2.0"})
	span.End()

	events := recorder.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Equal(t, []string{"1.0", "2.0"}, events[0].Attributes[0].Value.AsStringSlice())
}

func TestOTelTracer_EmitPlan_NoSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	tracer.EmitPlan(context.Background(), []string{"1.0"})
	assert.Empty(t, recorder.Ended())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "freeze")
	span.RecordError(errors.New("dangling reference"))
	span.End()

	ended := recorder.Ended()[0]
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "dangling reference", ended.Status().Description)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, "exception", ended.Events()[0].Name)
}

func TestOTelSpan_Write(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "emit")
	n, err := span.Write([]byte("wrote snapshot.1.0.json"))
	require.NoError(t, err)
	assert.Equal(t, 23, n)
	span.End()

	events := recorder.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
	assert.Equal(t, "wrote snapshot.1.0.json", events[0].Attributes[0].Value.AsString())
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "anything", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, got)

	span.SetAttribute("k", 1)
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	span.End()
	tracer.EmitPlan(ctx, []string{"1.0"})
}
