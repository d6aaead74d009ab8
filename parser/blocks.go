// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/scalerfx/effect"
)

// BlockKind identifies the structural kind of a block.
type BlockKind uint8

const (
	BlockHeader BlockKind = iota
	BlockConstant
	BlockTexture
	BlockSampler
	BlockCommon
	BlockPass
)

// String returns the directive token that opens blocks of this kind.
func (k BlockKind) String() string {
	switch k {
	case BlockHeader:
		return "HEADER"
	case BlockConstant:
		return "CONSTANT"
	case BlockTexture:
		return "TEXTURE"
	case BlockSampler:
		return "SAMPLER"
	case BlockCommon:
		return "COMMON"
	case BlockPass:
		return "PASS"
	default:
		return "Unknown"
	}
}

var blockKinds = map[string]BlockKind{
	"CONSTANT": BlockConstant,
	"TEXTURE":  BlockTexture,
	"SAMPLER":  BlockSampler,
	"COMMON":   BlockCommon,
	"PASS":     BlockPass,
}

// Block is a span of the source tagged with its kind.
//
// Blocks other than the header start immediately after their opening token,
// so the rest of the opening line is part of the block.
type Block struct {
	Kind  BlockKind
	src   string
	start int
	end   int
}

// NewBlock returns a block spanning the whole of text.
func NewBlock(kind BlockKind, text string) Block {
	return Block{Kind: kind, src: text, end: len(text)}
}

// Text returns the block's source text.
func (b Block) Text() string { return b.src[b.start:b.end] }

// Cursor returns a cursor limited to the block.
func (b Block) Cursor() Cursor {
	return Cursor{src: b.src, pos: b.start, end: b.end}
}

// Blocks is a source file partitioned into blocks. Each list keeps file order.
type Blocks struct {
	Header    Block
	Constants []Block
	Textures  []Block
	Samplers  []Block
	Commons   []Block
	Passes    []Block
}

func (bs *Blocks) add(b Block) {
	switch b.Kind {
	case BlockHeader:
		bs.Header = b
	case BlockConstant:
		bs.Constants = append(bs.Constants, b)
	case BlockTexture:
		bs.Textures = append(bs.Textures, b)
	case BlockSampler:
		bs.Samplers = append(bs.Samplers, b)
	case BlockCommon:
		bs.Commons = append(bs.Commons, b)
	case BlockPass:
		bs.Passes = append(bs.Passes, b)
	}
}

// SplitBlocks partitions src, starting at offset start, into blocks. A new
// block begins at every line whose first non-blank text is a directive marker
// followed by a block keyword. Text before the first such line forms the
// header block.
func SplitBlocks(src string, start int) (*Blocks, error) {
	bs := &Blocks{}
	kind := BlockHeader
	blockStart := start
	lineStart := true

	for i := start; i < len(src); {
		if lineStart {
			c := Cursor{src: src, pos: i, end: len(src)}.SkipSpaces()
			if n, ok := c.Consume(DirectiveMarker); ok {
				if n, tok, ok := n.Token(); ok {
					if k, ok := blockKinds[tok]; ok {
						bs.add(Block{Kind: kind, src: src, start: blockStart, end: i})
						kind = k
						blockStart = n.pos
						i = n.pos
						lineStart = false
						continue
					}
				}
			}
		}
		lineStart = src[i] == '\n'
		i++
	}
	bs.add(Block{Kind: kind, src: src, start: blockStart, end: len(src)})

	if len(bs.Passes) == 0 {
		c := Cursor{src: src, pos: len(src), end: len(src)}
		return nil, c.errorf(effect.KindStructural, "effect declares no PASS blocks")
	}
	return bs, nil
}
