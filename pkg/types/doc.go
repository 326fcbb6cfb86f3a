// Package types defines the data model, typed errors and diagnostics shared by
// the linker map parser and its writer collaborators.
//
// A parse produces a [Document]: the ordered output segments of the
// "Linker script and memory map" block, each holding the input records the
// linker placed into it, plus a per-object rollup of record sizes.
//
// Design goals:
//   - Writers only ever see a fully assembled Document.
//   - Malformed input is reported through typed errors with stable kinds
//     (invalid header / invalid record / invalid document).
//   - Linker anomalies that real map files contain are never errors; they are
//     emitted as Diagnostics to an injected Sink.
//
// This package has no dependencies beyond the standard library.
package types
