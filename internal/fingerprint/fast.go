package fingerprint

import (
	"io"
	"os"

	"github.com/zeebo/xxh3"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// fastDigest reads up to FastPrefixBytes from the head of path and returns
// its 128-bit xxh3 digest tagged model.AlgoFastXXH3. Fast mode never reads
// the rest of the file -- the safety gate forces a byte-level verification
// pass before any destructive action is taken on a fast-mode match, per
// spec.md's fast-mode-mandatory-verification invariant.
func fastDigest(path string) (model.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Digest{}, runerr.Wrap(runerr.CodeHashRead, "open "+path, err)
	}
	defer f.Close()

	buf := make([]byte, FastPrefixBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return model.Digest{}, runerr.Wrap(runerr.CodeHashRead, "read "+path, err)
	}

	sum := xxh3.Hash128(buf[:n])
	b := sum.Bytes16()

	return model.Digest{Algo: model.AlgoFastXXH3, Bytes: b[:]}, nil
}
