// Package testutil provides testing utilities for vecgraph.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded thread-safe RNG, random graph generation, and an
// invariant checker for edge symmetry.
//
//	rng := testutil.NewRNG(seed)
//	g := testutil.RandomGraph(rng, 128, 16)
//	testutil.CheckSymmetry(t, g)
package testutil
