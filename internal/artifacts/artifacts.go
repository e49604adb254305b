// internal/artifacts/artifacts.go

// Package artifacts summarizes a tree of build artifacts (platform, size and
// checksum per file) as a GitHub-flavored markdown table.
package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

const unknown = "Unknown"

// digestLen is how many hex characters of the SHA-256 are shown.
const digestLen = 10

var archNames = []string{"x86_64", "amd64", "arm", "arm64"}

// Artifact is one file of the scanned tree.
type Artifact struct {
	Path      string
	OS        string
	Arch      string
	BuildType string
	Size      int64
	SHA256    string
}

// Name is the file name of the artifact.
func (a Artifact) Name() string { return filepath.Base(a.Path) }

// Scan walks dir and returns every regular file below it, sorted by path.
func Scan(dir string) ([]Artifact, error) {
	var out []Artifact
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		a, err := inspect(path)
		if err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(&reporterrors.ErrIO{Path: dir, Op: "scan", Err: err})
	}

	slices.SortFunc(out, func(a, b Artifact) int { return strings.Compare(a.Path, b.Path) })
	log.WithFields(log.Fields{"path": dir, "files": len(out)}).Debug("Artifacts scanned")
	return out, nil
}

func inspect(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Artifact{}, err
	}
	osName, arch, buildType := Classify(path)
	return Artifact{
		Path:      path,
		OS:        osName,
		Arch:      arch,
		BuildType: buildType,
		Size:      n,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Classify derives platform information from the segments of path, e.g.
// artifacts/debug/debug-builds-linux/x86_64/debug/bin/app yields
// ("linux", "x86_64", "Debug"). Missing information is reported as "Unknown".
func Classify(path string) (osName, arch, buildType string) {
	parts := strings.Split(filepath.ToSlash(path), "/")

	switch {
	case slices.Contains(parts, "debug"):
		buildType = "Debug"
	case slices.Contains(parts, "release"):
		buildType = "Release"
	default:
		buildType = unknown
	}

	osName = unknown
	for _, p := range parts {
		if strings.HasPrefix(p, "debug-builds-") || strings.HasPrefix(p, "release-builds-") {
			osName = p[strings.LastIndex(p, "-")+1:]
			break
		}
	}

	arch = unknown
	for _, p := range parts {
		if slices.Contains(archNames, p) {
			arch = p
			break
		}
	}
	return osName, arch, buildType
}

// FormatSize renders n bytes with one decimal in B, KB, MB, GB or TB.
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// WriteMarkdown writes the artifact summary table.
func WriteMarkdown(w io.Writer, list []Artifact) error {
	var b strings.Builder
	b.WriteString("# Build Artifacts Summary\n\n")
	b.WriteString("| OS | Arch | Build Type | File | Size | SHA-256 |\n")
	b.WriteString("|:--:|:----:|:----------:|:----:|:----:|:-------:|\n")
	for _, a := range list {
		digest := a.SHA256
		if len(digest) > digestLen {
			digest = digest[:digestLen]
		}
		fmt.Fprintf(&b, "| %s | %s | %s | `%s` | %s | `%s` |\n",
			a.OS, a.Arch, a.BuildType, a.Name(), FormatSize(a.Size), digest)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
