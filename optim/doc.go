// Package optim provides first-order optimizers over the named parameters
// exposed by nn blocks: plain SGD with momentum and Adam with decoupled
// weight decay.
//
// 🚀 How does it fit the training loop?
//
//	Layers accumulate gradients during Backward; an Optimizer consumes the
//	resulting []nn.Param and updates every weight in place:
//
//	  model.ZeroGrad()
//	  ... forward / backward ...
//	  if err := opt.Step(model.Params()); err != nil { ... }
//
// ✨ Key properties:
//   - Stateful by name: momentum and moment estimates are keyed by
//     Param.Name, so the same optimizer follows a model across Step calls
//     without holding references into it.
//   - Validated up front: bad hyperparameters fail at construction with
//     sentinel errors (ErrBadLearningRate, ErrBadBeta, ErrBadMomentum),
//     never mid-training.
//   - Shape-drift detection: a parameter that changes shape between Step
//     calls surfaces ErrShapeDrift instead of silently corrupting state.
//
// Defaults follow the common deep-learning presets: SGD momentum 0, Adam
// (β₁, β₂, ε) = (0.9, 0.999, 1e-8).
package optim
