// Package octree implements a Barnes–Hut octree over body.Particle values.
//
// A Tree is built once per simulation step: particles are inserted into a
// root node covering a bounding box, ComputeMass aggregates masses and
// centers of mass bottom-up, and ComputeForce walks the tree to approximate
// the acceleration felt by a particle. Distant clusters are replaced by a
// point mass at their center of mass whenever width/distance <= Theta.
//
// Leaves hold copies of the inserted particles, so a tree never observes
// later changes to the caller's particles. Reset the root with ResetNode
// and reinsert to follow moving particles.
//
// # Thread Safety
//
// Insertion, ComputeMass and ResetNode mutate the tree and must not run
// concurrently with anything else. Once ComputeMass has returned,
// ComputeForce and Accelerations only read the tree and may be called from
// multiple goroutines.
package octree
