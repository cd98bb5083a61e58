// Package metadata decodes the CBOR-encoded build-metadata block that some
// compilers append to bytecode.
//
// The trailing block layout is: a CBOR map, followed by a 2-byte big-endian
// length of that map. The map conventionally carries a content hash of the
// source metadata ("ipfs", or "bzzr0"/"bzzr1" for swarm) and the compiler
// version ("solc"). Decoding uses github.com/fxamacker/cbor/v2; entries with
// unrecognized keys are preserved as hex strings.
package metadata
