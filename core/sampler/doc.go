// Package sampler draws independent Bernoulli subsamples from one or two
// record streams in a single pass.
//
// Design:
//   • Engine owns the only handle to the random source and consumes exactly
//     one draw per sample slot per unit, in ascending slot order. That order
//     is what makes a seed reproducible.
//   • RunSingle / RunPaired pull records, ask the Engine for one decision
//     vector per unit and route kept records to a Sink. Mates share a vector.
//   • Pairing is positional. Identifiers are never compared.
package sampler
