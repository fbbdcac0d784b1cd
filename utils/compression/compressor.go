// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package compression

// Compressor compresses and decompresses byte slices up to a maximum size.
type Compressor interface {
	// Compress [msg] and return the compressed bytes.
	Compress(msg []byte) ([]byte, error)
	// Decompress [msg] and return the decompressed bytes.
	Decompress(msg []byte) ([]byte, error)
}
