// Package asm contains SIMD kernels generated with avo. The generators
// live in the subdirectories and are run via go generate, the generated
// stubs and assembly are committed with the _amd64 suffix.
package asm
