package mvae

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a multi-view VAE completely; two models built from equal
// configs are identical before training.
type Config struct {
	// InputDims lists the feature width of every view.
	InputDims []int `yaml:"input_dims" json:"input_dims"`

	// HiddenDims lists the encoder trunk widths; decoders mirror them in
	// reverse. Empty means linear encoders and decoders.
	HiddenDims []int `yaml:"hidden_dims" json:"hidden_dims"`

	// ZDim is the latent width.
	ZDim int `yaml:"z_dim" json:"z_dim"`

	// Join selects the posterior fusion: JoinPoE or JoinMean.
	Join JoinType `yaml:"join" json:"join"`

	// Beta weighs the KL term of the objective.
	Beta float64 `yaml:"beta" json:"beta"`

	// Sparse switches the KL term to the variational-dropout
	// approximation, enabling latent pruning via ActiveLatents.
	Sparse bool `yaml:"sparse" json:"sparse"`

	// Threshold is the dropout-probability cutoff for ActiveLatents
	// (only meaningful when Sparse).
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// Likelihood selects the per-view reconstruction distribution.
	Likelihood Likelihood `yaml:"likelihood" json:"likelihood"`

	// Seed drives weight initialization and latent sampling
	// (seed==0 ⇒ fixed default).
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns the documented defaults for the given view widths
// and latent width: one hidden layer of 64 units, PoE fusion, β = 1,
// Gaussian likelihood, dense (non-sparse) latents, threshold 0.2.
func DefaultConfig(inputDims []int, zDim int) Config {
	return Config{
		InputDims:  inputDims,
		HiddenDims: []int{64},
		ZDim:       zDim,
		Join:       JoinPoE,
		Beta:       1,
		Threshold:  0.2,
		Likelihood: LikGaussian,
	}
}

// validate enforces the construction invariants.
func (c Config) validate() error {
	if len(c.InputDims) == 0 || c.ZDim <= 0 {
		return ErrBadConfig
	}
	for _, d := range c.InputDims {
		if d <= 0 {
			return ErrBadConfig
		}
	}
	for _, h := range c.HiddenDims {
		if h <= 0 {
			return ErrBadConfig
		}
	}
	switch c.Join {
	case JoinPoE, JoinMean:
	default:
		return fmt.Errorf("%w: %q", ErrBadJoin, c.Join)
	}
	switch c.Likelihood {
	case LikGaussian, LikBernoulli:
	default:
		return fmt.Errorf("%w: %q", ErrBadLikelihood, c.Likelihood)
	}
	if c.Beta < 0 || math.IsNaN(c.Beta) || math.IsInf(c.Beta, 0) {
		return ErrBadBeta
	}
	if c.Sparse && (c.Threshold <= 0 || c.Threshold >= 1) {
		return ErrBadThreshold
	}
	return nil
}

// yamlConfig mirrors Config with optional scalars so omitted keys take
// defaults instead of zero values.
type yamlConfig struct {
	InputDims  []int      `yaml:"input_dims"`
	HiddenDims *[]int     `yaml:"hidden_dims"`
	ZDim       int        `yaml:"z_dim"`
	Join       JoinType   `yaml:"join"`
	Beta       *float64   `yaml:"beta"`
	Sparse     bool       `yaml:"sparse"`
	Threshold  *float64   `yaml:"threshold"`
	Likelihood Likelihood `yaml:"likelihood"`
	Seed       int64      `yaml:"seed"`
}

// LoadConfig reads a YAML model description. Omitted keys fall back to the
// DefaultConfig values; the result is validated before it is returned.
//
// Example file:
//
//	input_dims: [8, 8]
//	z_dim: 4
//	join: PoE
//	beta: 0.5
//	sparse: true
//	threshold: 0.2
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mvae: read config: %w", err)
	}
	var yc yamlConfig
	if err = yaml.Unmarshal(raw, &yc); err != nil {
		return Config{}, fmt.Errorf("mvae: parse config: %w", err)
	}

	cfg := DefaultConfig(yc.InputDims, yc.ZDim)
	if yc.HiddenDims != nil {
		cfg.HiddenDims = *yc.HiddenDims
	}
	if yc.Join != "" {
		cfg.Join = yc.Join
	}
	if yc.Beta != nil {
		cfg.Beta = *yc.Beta
	}
	if yc.Threshold != nil {
		cfg.Threshold = *yc.Threshold
	}
	if yc.Likelihood != "" {
		cfg.Likelihood = yc.Likelihood
	}
	cfg.Sparse = yc.Sparse
	cfg.Seed = yc.Seed

	if err = cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
