// Package sweep contains the collection cleanup engine: scanning libraries,
// classifying collections against the label policy, building the removal
// plan, executing gated deletions, and summarizing the run.
package sweep
