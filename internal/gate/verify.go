package gate

import (
	"bytes"
	"io"
	"os"

	"github.com/morroware/DupeFInder/internal/runerr"
)

const verifyChunkSize = 256 * 1024

// VerifyIdentical does a byte-for-byte comparison of a and b. It is the
// mandatory upgrade step for any fast-mode digest match (and for any match
// when --verify is set): fast mode only ever inspects a file's first 64KiB,
// so two files sharing that prefix digest are merely candidates until this
// check confirms they are bit-for-bit identical.
func VerifyIdentical(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, runerr.Wrap(runerr.CodeHashRead, "open "+a, err)
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, runerr.Wrap(runerr.CodeHashRead, "open "+b, err)
	}
	defer fb.Close()

	infoA, err := fa.Stat()
	if err != nil {
		return false, runerr.Wrap(runerr.CodeHashRead, "stat "+a, err)
	}
	infoB, err := fb.Stat()
	if err != nil {
		return false, runerr.Wrap(runerr.CodeHashRead, "stat "+b, err)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	bufA := make([]byte, verifyChunkSize)
	bufB := make([]byte, verifyChunkSize)
	for {
		nA, errA := fa.Read(bufA)
		nB, errB := fb.Read(bufB)
		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}
		if errA == io.EOF && errB == io.EOF {
			return true, nil
		}
		if errA != nil && errA != io.EOF {
			return false, runerr.Wrap(runerr.CodeHashRead, "read "+a, errA)
		}
		if errB != nil && errB != io.EOF {
			return false, runerr.Wrap(runerr.CodeHashRead, "read "+b, errB)
		}
	}
}
