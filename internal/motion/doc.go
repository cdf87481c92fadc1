// Package motion defines the body state model and the state calculator for
// one-dimensional kinematics.
//
// A [Body] moves either under constant acceleration or along an authored
// [VelocityGraph], a piecewise-linear velocity function. [Evaluate] maps a
// body and a time to (position, velocity):
//
//	x, v := motion.Evaluate(body, 7.25)
//
// Evaluate is pure and total: it reads a value snapshot, allocates nothing
// shared, and handles degenerate graphs (duplicate or unsorted times)
// without failing, so it may be called freely from any context.
package motion
