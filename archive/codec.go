package archive

import (
	"fmt"
	"sync"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"

	"github.com/meigma/classpath/internal/fb"
)

// indexFormatVersion is bumped whenever the cached layout changes.
const indexFormatVersion = 1

// maxIndexBytes bounds the decoded size of a cached index.
const maxIndexBytes = 256 << 20

var (
	indexEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
	})
	indexDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(maxIndexBytes))
	})
)

// MarshalBinary encodes the index as a zstd-compressed FlatBuffers
// DirIndex.
func (x *Index) MarshalBinary() ([]byte, error) {
	enc, err := indexEncoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(x.buildFlatBuffer(), nil), nil
}

func (x *Index) buildFlatBuffer() []byte {
	builder := flatbuffers.NewBuilder(1024)

	paths := x.Subdirectories()
	dirOffsets := make([]flatbuffers.UOffsetT, len(paths))
	for i := len(paths) - 1; i >= 0; i-- {
		names := x.dirs[paths[i]]
		nameOffsets := make([]flatbuffers.UOffsetT, len(names))
		for j, name := range names {
			nameOffsets[j] = builder.CreateString(name)
		}
		fb.DirStartNamesVector(builder, len(names))
		for j := len(nameOffsets) - 1; j >= 0; j-- {
			builder.PrependUOffsetT(nameOffsets[j])
		}
		namesOffset := builder.EndVector(len(names))
		pathOffset := builder.CreateString(paths[i])

		fb.DirStart(builder)
		fb.DirAddPath(builder, pathOffset)
		fb.DirAddNames(builder, namesOffset)
		dirOffsets[i] = fb.DirEnd(builder)
	}

	fb.DirIndexStartDirsVector(builder, len(dirOffsets))
	for i := len(dirOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(dirOffsets[i])
	}
	dirsOffset := builder.EndVector(len(dirOffsets))

	fb.DirIndexStart(builder)
	fb.DirIndexAddVersion(builder, indexFormatVersion)
	fb.DirIndexAddDirs(builder, dirsOffset)
	builder.Finish(fb.DirIndexEnd(builder))
	return builder.FinishedBytes()
}

// UnmarshalIndex decodes an index written by MarshalBinary.
func UnmarshalIndex(data []byte) (*Index, error) {
	dec, err := indexDecoder()
	if err != nil {
		return nil, err
	}
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	return decodeFlatBuffer(raw)
}

func decodeFlatBuffer(raw []byte) (idx *Index, err error) {
	defer func() {
		if r := recover(); r != nil {
			idx = nil
			err = fmt.Errorf("%w: %v", ErrCorruptIndex, r)
		}
	}()
	if len(raw) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptIndex, len(raw))
	}

	root := fb.GetRootAsDirIndex(raw, 0)
	if v := root.Version(); v != indexFormatVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrCorruptIndex, v, indexFormatVersion)
	}

	// Every vector element is at least a 4-byte offset, so a length past
	// len(raw)/4 can only come from corrupt bytes.
	maxLen := len(raw) / flatbuffers.SizeUOffsetT
	ndirs := root.DirsLength()
	if ndirs > maxLen {
		return nil, fmt.Errorf("%w: %d directories in %d bytes", ErrCorruptIndex, ndirs, len(raw))
	}

	idx = &Index{dirs: make(map[string][]string, ndirs)}
	var dir fb.Dir
	for i := range ndirs {
		root.Dirs(&dir, i)
		n := dir.NamesLength()
		if n == 0 {
			return nil, fmt.Errorf("%w: empty directory %q", ErrCorruptIndex, dir.Path())
		}
		if n > maxLen {
			return nil, fmt.Errorf("%w: %d names in %d bytes", ErrCorruptIndex, n, len(raw))
		}
		names := make([]string, n)
		for j := range n {
			names[j] = string(dir.Names(j))
		}
		idx.dirs[string(dir.Path())] = names
		idx.files += n
	}
	return idx, nil
}
