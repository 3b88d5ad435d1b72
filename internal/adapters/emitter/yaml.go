package emitter

import (
	"bytes"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.Emitter = (*YAML)(nil)

// YAML emits snapshots as YAML documents.
type YAML struct{}

// Format returns "yaml".
func (YAML) Format() string { return "yaml" }

// Marshal renders the snapshot without writing it.
func (YAML) Marshal(s *domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s)); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "version", s.Version().Label())
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "version", s.Version().Label())
	}
	return buf.Bytes(), nil
}

// Emit writes dir/snapshot.<label>.yaml.
func (e YAML) Emit(dir string, s *domain.Snapshot) (string, error) {
	data, err := e.Marshal(s)
	if err != nil {
		return "", err
	}
	return writeArtifact(dir, s, e.Format(), data)
}
