// Package data provides the multi-view dataset plumbing: aligned view
// matrices, train/test splitting, standardization, deterministic mini-batch
// loading, and synthetic multi-view generators for tests and examples.
//
// 🚀 What is a multi-view dataset?
//
//	V matrices that describe the same n samples from different angles:
//	view i is an n×dᵢ matrix, and row k of every view belongs to the same
//	underlying sample. All operations here preserve that row alignment —
//	splits, shuffles, and batches always move whole rows across all views
//	together.
//
// ✨ Key features:
//   - Dataset     — validated, row-aligned container over []*mat.Dense
//   - Split       — deterministic train/test row partition (seeded)
//   - Scaler      — per-column standardization fitted on train, reusable on
//     held-out data (gonum stat under the hood)
//   - Loader      — mini-batch iterator with optional seeded shuffling and
//     a drop-last policy; identical seed ⇒ identical batch order
//   - Synthetic   — latent-factor generator producing correlated views from
//     a shared low-dimensional code, the standard multi-view test bed
//
// ⚙️ Usage:
//
//	ds, err := data.NewDataset(views)
//	train, test, err := ds.Split(0.8, 42)
//	scaler, err := train.Standardize()
//	_ = scaler.Apply(test)
//	ld, err := data.NewLoader(train, data.WithBatchSize(32), data.WithShuffle(42))
//	for batch, ok := ld.Next(); ok; batch, ok = ld.Next() { ... }
//
// Errors: ErrRaggedViews, ErrEmptyDataset, ErrBadBatchSize, ErrBadFraction —
// matched with errors.Is.
package data
