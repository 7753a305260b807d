package fingerprint

import (
	"io"
	"os"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// strongReadChunk is the buffer size used to stream a file through the
// BLAKE2b hasher, bounding peak memory regardless of file size.
const strongReadChunk = 1 << 20 // 1 MiB

// strongDigest streams the full content of path through a BLAKE2b hasher
// of the given width and returns the resulting digest.
func strongDigest(path string, bits int) (model.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Digest{}, runerr.Wrap(runerr.CodeHashRead, "open "+path, err)
	}
	defer f.Close()

	h, err := newStrongHash(bits)
	if err != nil {
		return model.Digest{}, err
	}

	buf := make([]byte, strongReadChunk)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return model.Digest{}, runerr.Wrap(runerr.CodeHashRead, "read "+path, err)
	}

	return model.Digest{Algo: algorithmFor(bits), Bytes: h.Sum(nil)}, nil
}
