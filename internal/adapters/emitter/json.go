package emitter

import (
	"github.com/goccy/go-json"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Emitter = (*JSON)(nil)

// JSON emits snapshots as indented JSON.
type JSON struct{}

// Format returns "json".
func (JSON) Format() string { return "json" }

// Marshal renders the snapshot without writing it.
func (JSON) Marshal(s *domain.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(s), "", "  ")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "version", s.Version().Label())
	}
	return append(data, '\n'), nil
}

// Emit writes dir/snapshot.<label>.json.
func (e JSON) Emit(dir string, s *domain.Snapshot) (string, error) {
	data, err := e.Marshal(s)
	if err != nil {
		return "", err
	}
	return writeArtifact(dir, s, e.Format(), data)
}
