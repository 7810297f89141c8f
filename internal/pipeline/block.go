// Package pipeline provides the overlapped block framing shared by the
// block-based analyzers.
package pipeline

import "fmt"

// Source supplies samples sequentially. Read returns fewer than n samples
// only at the end of the input.
type Source interface {
	Read(n int) []float64
}

// BlockBuffer frames a Source into overlapping blocks. The first call to
// Next fills a whole block; every later call shifts the block left by the
// hop and refills the tail from the source.
type BlockBuffer struct {
	src    Source
	block  []float64
	hop    int
	blocks int
}

// NewBlockBuffer returns a buffer of size samples advancing by hop. A hop
// larger than size skips the samples in between.
func NewBlockBuffer(src Source, size, hop int) (*BlockBuffer, error) {
	if size < 1 {
		return nil, fmt.Errorf("block size %d: must be positive", size)
	}
	if hop < 1 {
		return nil, fmt.Errorf("hop %d: must be positive", hop)
	}
	return &BlockBuffer{
		src:   src,
		block: make([]float64, size),
		hop:   hop,
	}, nil
}

// Hop returns size/divisor, at least one sample.
func Hop(size, divisor int) int {
	return max(1, size/divisor)
}

// Next advances to the next block. It returns false once the source can no
// longer supply a full refill; the previous block is then left untouched.
func (b *BlockBuffer) Next() bool {
	size := len(b.block)
	if b.blocks == 0 {
		if !b.fill(b.block) {
			return false
		}
		b.blocks++
		return true
	}

	if b.hop >= size {
		if skip := b.hop - size; skip > 0 && len(b.src.Read(skip)) < skip {
			return false
		}
		if !b.fill(b.block) {
			return false
		}
		b.blocks++
		return true
	}

	in := b.src.Read(b.hop)
	if len(in) < b.hop {
		return false
	}
	copy(b.block, b.block[b.hop:])
	copy(b.block[size-b.hop:], in)
	b.blocks++
	return true
}

func (b *BlockBuffer) fill(dst []float64) bool {
	in := b.src.Read(len(dst))
	if len(in) < len(dst) {
		return false
	}
	copy(dst, in)
	return true
}

// Block returns the current block. It is overwritten by Next.
func (b *BlockBuffer) Block() []float64 { return b.block }

// Blocks returns the number of blocks produced so far.
func (b *BlockBuffer) Blocks() int { return b.blocks }

// Size returns the block length.
func (b *BlockBuffer) Size() int { return len(b.block) }
