// Package body defines the particles of an n-body system and the pairwise
// interaction laws acting between them.
//
// Vectors are gonum [r3.Vec] values. The aliases [Position], [Velocity],
// [Acceleration] and [Force] only document intent; they are freely
// interchangeable.
//
// A [ForceLaw] is a pure function of two positions, two weights and two
// radii that returns the force exerted on the first particle by the second:
//
//   - [Gravitational]: Newtonian attraction, the default law
//   - [Electrostatic]: Coulomb interaction, like charges repel
//   - [Softened]: Plummer-softened gravity that stays finite at contact
//
// Laws that also implement [Potential] can be used for energy diagnostics.
package body
