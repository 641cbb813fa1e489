// Package mvae implements the multi-view variational autoencoder: per-view
// Gaussian encoders, a joint latent posterior fused by Product-of-Experts
// or Mean-of-Experts, per-view decoders, and a β-weighted ELBO trained by
// analytic backpropagation.
//
// 🚀 What is an mVAE?
//
//	Each view xᵢ gets its own encoder producing (μᵢ, σᵢ²). A joiner fuses
//	the per-view posteriors into one q(z|x₁..x_V); a reparameterized draw
//	z ~ q feeds every decoder; the loss is
//
//	  L = β·KL(q ‖ N(0,I)) − Σᵢ log pᵢ(xᵢ|z)
//
//	With Sparse enabled the KL term switches to the variational-dropout
//	approximation, and latent dimensions the data does not need acquire
//	dropout probabilities near one — prune them with ActiveLatents.
//
// ✨ Key features:
//   - Config-driven construction, YAML-loadable (LoadConfig)
//   - Join types: "PoE" (precision-weighted) and "Mean" — anything else is
//     rejected with ErrBadJoin at build time
//   - Gaussian or Bernoulli view likelihoods
//   - TrainBatch / Fit with epoch hooks and context cancellation
//   - Cross-view reconstruction: decode every view from any subset
//   - JSON checkpoints, gzip-compressed for .gz filenames
//
// ⚙️ Usage:
//
//	cfg := mvae.DefaultConfig([]int{8, 8}, 4)
//	m, err := mvae.New(cfg)
//	opt, _ := optim.NewAdam(1e-3)
//	history, err := m.Fit(trainSet, opt,
//	    mvae.WithEpochs(50),
//	    mvae.WithBatchSize(32),
//	    mvae.WithOnEpoch(func(epoch int, avg mvae.LossReport) error {
//	        fmt.Printf("epoch %d loss %.3f\n", epoch, avg.Total)
//	        return nil
//	    }),
//	)
//	xhat, err := m.Reconstruct(views)
//
// Determinism: the config Seed drives weight initialization, latent
// sampling, and shuffling; equal seeds reproduce equal training runs.
//
// Models are not safe for concurrent use.
package mvae
