package runctl

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// resumeFile is the TOML-serializable shape of a model.ResumePoint, kept
// distinct from model.ResumePoint so the wire format (string-keyed,
// TOML-friendly) can evolve independently of the in-memory type.
type resumeFile struct {
	ID        string              `toml:"id"`
	CreatedAt int64               `toml:"created_at"`
	Checksum  string              `toml:"checksum"`
	Groups    []resumeGroupRecord `toml:"group"`
}

type resumeGroupRecord struct {
	GroupID int                  `toml:"group_id"`
	Algo    string               `toml:"algo"`
	Digest  string               `toml:"digest"`
	Size    uint64               `toml:"size"`
	Members []resumeMemberRecord `toml:"member"`
}

type resumeMemberRecord struct {
	Path    string `toml:"path"`
	Size    uint64 `toml:"size"`
	ModTime int64  `toml:"mod_time"`
	Device  uint64 `toml:"device"`
}

// SaveResumePoint persists the grouper's output to path as TOML, so an
// interrupted run can re-enter at the keep-select stage (spec.md's --resume
// flag) without repeating the walk/fingerprint/group stages.
func SaveResumePoint(path string, groups []model.DigestGroup) error {
	rp := toResumeFile(groups)
	f, err := os.Create(path)
	if err != nil {
		return runerr.Wrap(runerr.CodeActionIO, "create resume point file", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(rp); err != nil {
		return runerr.Wrap(runerr.CodeActionIO, "encode resume point", err)
	}
	return nil
}

// LoadResumePoint reads and verifies a resume point previously written by
// SaveResumePoint. A checksum mismatch is reported as
// runerr.CodeResumeCorrupt rather than silently accepted, since acting on
// a corrupted group list could select the wrong survivor.
func LoadResumePoint(path string) ([]model.DigestGroup, error) {
	var rp resumeFile
	if _, err := toml.DecodeFile(path, &rp); err != nil {
		return nil, runerr.Wrap(runerr.CodeResumeCorrupt, "parse resume point", err)
	}

	groups := fromResumeFile(rp)
	want := checksumGroups(groups)
	if want != rp.Checksum {
		return nil, runerr.New(runerr.CodeResumeCorrupt, "resume point checksum mismatch")
	}
	return groups, nil
}

func toResumeFile(groups []model.DigestGroup) resumeFile {
	rp := resumeFile{
		ID:     uuid.NewString(),
		Groups: make([]resumeGroupRecord, 0, len(groups)),
	}
	for _, g := range groups {
		rec := resumeGroupRecord{
			GroupID: g.GroupID,
			Algo:    string(g.Digest.Algo),
			Digest:  g.Digest.Hex(),
			Size:    g.Size,
			Members: make([]resumeMemberRecord, 0, len(g.Members)),
		}
		for _, m := range g.Members {
			rec.Members = append(rec.Members, resumeMemberRecord{
				Path: m.Path, Size: m.Size, ModTime: m.ModTime, Device: m.Device,
			})
		}
		rp.Groups = append(rp.Groups, rec)
	}
	rp.Checksum = checksumGroups(groups)
	return rp
}

func fromResumeFile(rp resumeFile) []model.DigestGroup {
	groups := make([]model.DigestGroup, 0, len(rp.Groups))
	for _, rec := range rp.Groups {
		bytesDigest, _ := decodeHex(rec.Digest)
		g := model.DigestGroup{
			GroupID: rec.GroupID,
			Digest:  model.Digest{Algo: model.Algorithm(rec.Algo), Bytes: bytesDigest},
			Size:    rec.Size,
			Members: make([]model.FileRecord, 0, len(rec.Members)),
		}
		for _, m := range rec.Members {
			g.Members = append(g.Members, model.FileRecord{
				Path: m.Path, Size: m.Size, ModTime: m.ModTime, Device: m.Device, Digest: g.Digest,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// checksumGroups derives a stable BLAKE2b-128 checksum over the resume
// point's content, reusing the same hashing dependency the fingerprinter
// already pulls in rather than adding a second one for this purpose.
func checksumGroups(groups []model.DigestGroup) string {
	h, _ := blake2b.New(16, nil)
	for _, g := range groups {
		fmt.Fprintf(h, "%d|%s|%d|", g.GroupID, g.Digest.Hex(), g.Size)
		for _, m := range g.Members {
			fmt.Fprintf(h, "%s|%d|%d|", m.Path, m.Size, m.ModTime)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
