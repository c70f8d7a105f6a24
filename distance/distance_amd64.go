package distance

import (
	"runtime"

	"github.com/distfind/distmat/distance/asm"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"
)

/* This init function overrides the kernel variables with the generated
 * assembly implementations if the CPU supports it. Note the file name has
 * the _amd64 suffix so it is only compiled for that architecture.
 *
 * Read more at https://pkg.go.dev/cmd/go#hdr-Build_constraints
 */

func init() {
	if cpu.X86.HasAVX2 && cpu.X86.HasFMA && cpu.X86.HasSSE3 {
		log.Info().Str("GOARCH", runtime.GOARCH).Msg("Using ASM kernels for dot and euclidean distance")
		dotProductImpl = asm.Dot
		squaredEuclideanImpl = asm.SquaredEuclideanDistance
	} else {
		log.Warn().Str("GOARCH", runtime.GOARCH).Msg("No ASM support for dot and euclidean distance")
	}
}
