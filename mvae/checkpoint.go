package mvae

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// checkpointVersion guards the on-disk layout.
const checkpointVersion = 1

// tensorBlob is one serialized weight matrix.
type tensorBlob struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// checkpoint is the JSON document written by Save: the full config plus
// every parameter keyed by its stable name. RNG state is not persisted;
// a loaded model resumes sampling from its seed.
type checkpoint struct {
	Version int                   `json:"version"`
	Config  Config                `json:"config"`
	Params  map[string]tensorBlob `json:"params"`
}

// Save writes the model as JSON to w.
func (m *Model) Save(w io.Writer) error {
	ck := checkpoint{
		Version: checkpointVersion,
		Config:  m.cfg,
		Params:  make(map[string]tensorBlob),
	}
	for _, p := range m.Params() {
		r, c := p.W.Dims()
		data := make([]float64, r*c)
		copy(data, p.W.RawMatrix().Data)
		ck.Params[p.Name] = tensorBlob{Rows: r, Cols: c, Data: data}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(ck)
}

// Load reads a checkpoint written by Save, rebuilds the model from the
// embedded config, and restores every weight.
//
// Errors: ErrBadCheckpoint for unreadable payloads or unknown versions,
// ErrCheckpointMismatch when the stored parameters do not line up with the
// rebuilt model, plus the Config validation sentinels.
func Load(r io.Reader) (*Model, error) {
	var ck checkpoint
	if err := json.NewDecoder(r).Decode(&ck); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, err)
	}
	if ck.Version != checkpointVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadCheckpoint, ck.Version)
	}

	m, err := New(ck.Config)
	if err != nil {
		return nil, err
	}
	params := m.Params()
	if len(params) != len(ck.Params) {
		return nil, ErrCheckpointMismatch
	}
	for _, p := range params {
		blob, ok := ck.Params[p.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrCheckpointMismatch, p.Name)
		}
		wr, wc := p.W.Dims()
		if blob.Rows != wr || blob.Cols != wc || len(blob.Data) != wr*wc {
			return nil, fmt.Errorf("%w: shape of %q", ErrCheckpointMismatch, p.Name)
		}
		p.W.SetRawMatrix(mat.NewDense(wr, wc, blob.Data).RawMatrix())
	}
	return m, nil
}

// SaveFile writes the model to path; a ".gz" suffix selects gzip framing.
func (m *Model) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if err = m.Save(w); err != nil {
		f.Close()
		return err
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// LoadFile reads a model from path; a ".gz" suffix selects gzip framing.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, zerr := gzip.NewReader(f)
		if zerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadCheckpoint, zerr)
		}
		defer zr.Close()
		r = zr
	}
	return Load(r)
}
