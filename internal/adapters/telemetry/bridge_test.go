package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/internal/adapters/telemetry"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLogBridge_ReportsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var messages []string
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		messages = append(messages, msg)
	})

	provider := telemetry.NewProvider(telemetry.NewLogBridge(logger))
	tracer := telemetry.NewOTelTracerFrom(provider, "test")

	_, span := tracer.Start(context.Background(), "project.version", ports.WithAttribute("version", "2.0"))
	span.SetAttribute("elements", 7)
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))

	require.Len(t, messages, 1)
	assert.Regexp(t, `^project\.version finished in \S+ version=2\.0 elements=7$`, messages[0])
}

func TestLogBridge_FailedSpansWarn(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Regexp(t, `^freeze finished in \S+: schema validation failed$`, msg)
	})

	provider := telemetry.NewProvider(telemetry.NewLogBridge(logger))
	tracer := telemetry.NewOTelTracerFrom(provider, "test")

	_, span := tracer.Start(context.Background(), "freeze")
	span.RecordError(errors.New("schema validation failed"))
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestLogBridge_NilLogger(t *testing.T) {
	provider := telemetry.NewProvider(telemetry.NewLogBridge(nil))
	tracer := telemetry.NewOTelTracerFrom(provider, "test")

	_, span := tracer.Start(context.Background(), "freeze")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
}
