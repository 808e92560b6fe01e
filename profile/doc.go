// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling is enabled at build time with the "pprof" build tag; without
// it every operation is a no-op with zero overhead. With the tag, the
// supported modes are listed by [Modes] and profile files are written to
// the configured output directory (cpu.pprof, mem.pprof, and so on),
// analyzable with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
