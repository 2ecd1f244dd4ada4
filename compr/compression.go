// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package compr reads grammar files with transparent
// decompression, so compressor outputs can be stored
// zstd-compressed next to the originals.
package compr

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var zstdDecoder *zstd.Decoder

func init() {
	// by default, concurrency is set to min(4, GOMAXPROCS);
	// we'd like it to *always* be GOMAXPROCS
	z, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		panic(err)
	}
	zstdDecoder = z
}

// DecodeZstd calls DecodeAll on the global zstd decoder.
//
// See: (*zstd.Decoder).DecodeAll
func DecodeZstd(src, dst []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(src, dst)
}

// ReadFile reads the named grammar file. A file with a .zst
// suffix is decompressed; when the named file does not exist
// but a .zst sibling does, the sibling is read instead.
func ReadFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !strings.HasSuffix(path, ".zst") {
			if zbuf, zerr := os.ReadFile(path + ".zst"); zerr == nil {
				buf, err = zbuf, nil
				path += ".zst"
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if strings.HasSuffix(path, ".zst") {
		buf, err = DecodeZstd(buf, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}
	return buf, nil
}
