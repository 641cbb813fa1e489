// Package join fuses per-view latent posteriors into one joint posterior —
// the step that makes a multi-view autoencoder multi-view.
//
// 🚀 What is a joiner?
//
//	Each view's encoder produces a diagonal Gaussian (μᵢ, σᵢ²). A Joiner
//	combines the stack of per-view parameters into a single (μ, σ²):
//	  • ProductOfExperts — precision-weighted fusion. Each expert votes with
//	    weight 1/σᵢ²; confident views dominate, uncertain views defer. An
//	    optional unit prior expert N(0, I) keeps the product well-behaved
//	    when every view is uncertain.
//	  • MeanOfExperts   — the arithmetic mean of μᵢ and of σᵢ².
//
// ✨ Key properties:
//   - Differentiable: every Joiner carries an analytic Backward that maps
//     gradients on the joint (μ, σ²) back to per-view gradients, so the
//     fusion sits inside the training graph like any other layer.
//   - Closed-form PoE: with the prior expert,
//     σ² = 1 / (1 + Σ 1/σᵢ²),  μ = σ² · Σ μᵢ/σᵢ².
//   - Deterministic and allocation-predictable: no hidden state beyond the
//     cache Backward needs.
//
// ⚙️ Usage:
//
//	j := join.NewProductOfExperts()
//	mu, va, err := j.Join(mus, vars)         // one slice entry per view
//	...
//	gmus, gvars, err := j.Backward(gMu, gVar) // after Join
//
// Errors: ErrNoViews, ErrViewShapeMismatch, ErrJoinNotComputed — matched
// with errors.Is.
//
// Complexity: O(views·rows·cols) time and memory for both directions.
package join
