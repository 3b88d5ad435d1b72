package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lineage/internal/adapters/logger"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newBufferedLogger(t)

	lg.Info("loaded schema")
	lg.Warn("no versions changed")

	out := buf.String()
	assert.Contains(t, out, "loaded schema\n")
	assert.Contains(t, out, "! no versions changed\n")
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newBufferedLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_Error_Pretty(t *testing.T) {
	lg, buf := newBufferedLogger(t)

	err := zerr.Wrap(domain.ErrDanglingReference, "reference target is absent")
	err = zerr.With(err, "element", "api.Order")
	err = zerr.With(err, "version", "2.0")
	lg.Error(err)

	want := strings.Join([]string{
		"✗ Error: reference target is absent (element=api.Order, version=2.0)",
		"",
		"  Caused by:",
		"    → dangling reference",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_Diagnostics(t *testing.T) {
	lg, buf := newBufferedLogger(t)

	diags := &domain.DiagnosticsError{Diagnostics: []error{
		zerr.Wrap(domain.ErrNameCollision, "siblings share an effective name"),
		zerr.Wrap(domain.ErrOrphanedElement, "element is present while its parent is absent"),
	}}
	lg.Error(zerr.Wrap(diags, "check failed"))

	out := buf.String()
	assert.Contains(t, out, "Error: check failed")
	assert.Contains(t, out, "→ schema validation failed: 2 problems")
	assert.NotContains(t, out, "siblings share")
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.SetJSON(true)

	err := zerr.With(zerr.Wrap(domain.ErrUnknownVersion, "no such version"), "version", "9.9")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"version":"9.9"`)
	assert.Contains(t, out, "no such version: unknown version")

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata [][]string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: [][]string{nil},
		},
		{
			name:         "wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root cause"},
			wantMetadata: [][]string{nil, nil, nil},
		},
		{
			name:         "metadata is sorted by key",
			err:          zerr.With(zerr.With(zerr.New("base"), "b", 2), "a", "x"),
			wantMessages: []string{"base"},
			wantMetadata: [][]string{{"a=x", "b=2"}},
		},
		{
			name:         "metadata on a standard error folds into its own level",
			err:          zerr.With(errors.New("plain"), "path", "lineage.yaml"),
			wantMessages: []string{"", "plain"},
			wantMetadata: [][]string{{"path=lineage.yaml"}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			require.Len(t, entries, len(tt.wantMessages))
			for i, e := range entries {
				assert.Equal(t, tt.wantMessages[i], logger.ErrorEntryMessage(e))
				assert.Equal(t, tt.wantMetadata[i], logger.ErrorEntryMetadata(e))
			}
		})
	}
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	entries := logger.CollectErrorEntries(zerr.Wrap(errors.New("line one\nline two"), "outer"))

	got := logger.FormatErrorEntries(entries)

	assert.Equal(t, "Error: outer\n\n  Caused by:\n    → line one\n      line two", got)
}
