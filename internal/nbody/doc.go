// Package nbody owns a particle collection and advances it through time.
//
// Three strategies are available:
//
//   - [StrategyDirect]: the pairwise update of [System.Compute]
//   - [StrategyTree]: Barnes–Hut accelerations driving any [dynamo.Integrator]
//   - [StrategyPair]: two particles advanced by an [integrators.Discretizer]
//
// A System is also a [dynamo.System], so it can be handed to a
// [dynamo.Simulator] together with [System.Integrator].
package nbody
