// Package dist provides the probability distributions used by multi-view
// variational autoencoders: the diagonal Normal (latent posteriors and
// Gaussian likelihoods), the logits-parameterized Bernoulli (binary
// likelihoods), and the Laplace (heavy-tailed likelihoods).
//
// 🚀 What does dist cover?
//
//	Every distribution operates elementwise over a batch: rows are samples,
//	columns are dimensions, all stored as gonum *mat.Dense. On top of the
//	usual density evaluation you get:
//	  • Reparameterized sampling (Rsample) that hands back the noise, so
//	    callers can push gradients through the pathwise derivative
//	  • Closed-form KL divergence between diagonal Normals
//	  • The variational-dropout KL approximation (sparse VAE) together with
//	    per-dimension dropout probabilities for latent pruning
//
// ✨ Key properties:
//   - Deterministic: sampling takes an explicit *rand.Rand; a nil RNG falls
//     back to a fixed-seed default stream, never to a time-based source.
//   - Numerically careful: Bernoulli log-likelihood is computed in the
//     softplus form, sparse KL floors μ² away from zero.
//   - Error discipline: shape and parameter violations surface as sentinel
//     errors (ErrShapeMismatch, ErrBadVariance, ErrBadScale) matched with
//     errors.Is; nothing panics on user input.
//
// ⚙️ Usage:
//
//	q, err := dist.NewNormal(mu, va)      // batch posterior q(z|x)
//	if err != nil { ... }
//	z, eps := q.Rsample(rng)              // z = μ + σ·ε, ε returned for backprop
//	kl, _ := q.KL(nil)                    // KL(q ‖ N(0,I)), elementwise
//	skl := q.SparseKL()                   // variational-dropout approximation
//
// Complexity: all operations are O(rows·cols) time and memory.
package dist
