// Package codec provides decoders for compression formats that archive
// members themselves may carry (a "logs.txt.gz" entry inside a zip). The
// streamer uses [ForExt] to transparently decompress such members before
// content filtering.
package codec

import (
	"io"
	"strings"
)

// Codec has methods to create a decoder and an encoder for one compression
// algorithm. The search engine only decodes; encoders exist for symmetry and
// for producing test content.
type Codec interface {
	// NewDecoder creates a decoder to decompress contents from the given io.Reader.
	NewDecoder(src io.Reader) (io.ReadCloser, error)
	// NewEncoder creates an encoder to compress contents to the given io.Writer.
	NewEncoder(dst io.Writer) (io.WriteCloser, error)
}

// ForExt returns the codec registered for the given member extension
// (".gz", ".xz", ".zst"), matching case-insensitively.
func ForExt(ext string) (Codec, bool) {
	switch strings.ToLower(ext) {
	case ".gz":
		return GzipCodec{}, true
	case ".xz":
		return XzCodec{}, true
	case ".zst":
		return ZstdCodec{}, true
	default:
		return nil, false
	}
}
