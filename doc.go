// Package multivae is your in-memory toolkit for building, training, and
// probing multi-view variational autoencoders — models that learn one shared
// latent representation from several observed data views at once.
//
// 🚀 What is multivae?
//
//	A modern, deterministic library that brings together:
//		• Distributions: diagonal Normal, Bernoulli, Laplace with closed-form
//		  KL divergence and a variational-dropout (sparse) KL approximation
//		• Latent fusion: Product-of-Experts and Mean-of-Experts joiners
//		• Neural blocks: linear layers, activations, MLPs, Gaussian heads
//		  with analytic forward/backward passes
//		• Optimizers: SGD with momentum, Adam with weight decay
//		• Data plumbing: multi-view datasets, standardization, deterministic
//		  mini-batch loaders, synthetic multi-view generators
//		• The model: mVAE with β-weighted ELBO, sparse latent pruning,
//		  cross-view reconstruction, and gzip-aware checkpointing
//
// ✨ Why choose multivae?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Reproducible – fixed-seed RNG policy everywhere, no time-based sources
//   - gonum under the hood – every batch and weight is a mat.Dense
//   - Extensible – add custom hooks (OnEpoch…) and joiners for custom logic
//
// Under the hood, everything is organized under six subpackages:
//
//	dist/  — Normal, Bernoulli, Laplace; log-likelihood, KL, sparse KL
//	join/  — Product-of-Experts & Mean-of-Experts posterior fusion
//	nn/    — Linear, activations, MLP, GaussianHead, weight initializers
//	optim/ — SGD and Adam optimizers over named parameters
//	data/  — multi-view Dataset, Scaler, Loader, synthetic generators
//	mvae/  — the multi-view VAE: config, training loop, inference, checkpoints
//
// Quick ASCII example:
//
//	    x₁ ──E₁──▶ (μ₁,σ₁²) ─┐
//	                         ├─PoE─▶ q(z|x) ──z──▶ D₁──▶ x̂₁
//	    x₂ ──E₂──▶ (μ₂,σ₂²) ─┘                     D₂──▶ x̂₂
//
//	two views, two encoders, one joint latent, two decoders.
//
// Dive into examples/ for end-to-end scenarios: paired-sensor fusion and
// cross-view imputation.
//
//	go get github.com/katalvlaran/multivae
package multivae
