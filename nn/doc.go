// Package nn provides the neural building blocks of multivae: linear layers,
// activations, multi-layer perceptrons, and the Gaussian encoder head — each
// with an analytic forward and backward pass over gonum matrices.
//
// 🚀 What does nn cover?
//
//	Everything a multi-view VAE needs between its inputs and its latent space:
//	  • Linear — y = x·W + b with cached input and accumulated gradients
//	  • ReLU / Sigmoid / Tanh / Identity activations
//	  • MLP — a named stack of Linear+activation pairs
//	  • GaussianHead — shared trunk feeding two heads: μ and log σ²
//	  • Initializers — XavierUniform, HeNormal, NormalInit (distuv-backed)
//
// ✨ Key properties:
//   - Explicit training contract: Forward caches what Backward needs;
//     Backward returns the gradient w.r.t. the input and accumulates
//     parameter gradients until ZeroGrad.
//   - Named parameters: Params() exposes stable "layer.w"/"layer.b" names,
//     the keys optimizers use for per-parameter state.
//   - Deterministic initialization under the fixed-seed policy (seed==0
//     selects a stable default, never the clock).
//
// ⚙️ Usage:
//
//	enc, err := nn.NewGaussianHead("enc0", 16, []int{32}, 4)
//	mu, logvar, err := enc.Forward(x)
//	...
//	gx, err := enc.Backward(gMu, gLogVar)
//
// Errors: ErrBadDims, ErrNilInput, ErrShapeMismatch, ErrNoForward — matched
// with errors.Is. Batches are rows; features are columns.
package nn
