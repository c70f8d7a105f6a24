package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/cpu"

	"github.com/distfind/distmat/distance/asm"
)

func skipWithoutASM(t *testing.T) {
	if !(cpu.X86.HasAVX2 && cpu.X86.HasFMA && cpu.X86.HasSSE3) {
		t.Skip("CPU does not support the required features")
	}
}

func TestASMDotProduct(t *testing.T) {
	skipWithoutASM(t)
	for _, tt := range vectorTable {
		t.Run(tt.name, func(t *testing.T) {
			got := asm.Dot(tt.x, tt.y)
			assert.Equal(t, tt.wantDot, got)
		})
	}
}

func TestASMSquaredEuclidean(t *testing.T) {
	skipWithoutASM(t)
	for _, tt := range vectorTable {
		t.Run(tt.name, func(t *testing.T) {
			got := asm.SquaredEuclideanDistance(tt.x, tt.y)
			assert.Equal(t, tt.wantEuclidean, got)
		})
	}
}

// The asm kernels process 32 elements per block, so exercise sizes around
// the block boundary against the pure Go reference.
func TestASMMatchesPureGo(t *testing.T) {
	skipWithoutASM(t)
	for _, size := range []int{1, 7, 31, 32, 33, 64, 100} {
		x := randVector(size)
		y := randVector(size)
		assert.InDelta(t, squaredEuclideanDistancePureGo(x, y), asm.SquaredEuclideanDistance(x, y), 1e-4)
		assert.InDelta(t, dotProductPureGo(x, y), asm.Dot(x, y), 1e-4)
	}
}
