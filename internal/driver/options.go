package driver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"taglist/internal/tags"
)

// Normalization selects the Unicode normal form applied to input before it is
// parsed. Tags that differ only in composition then dedupe as one.
type Normalization uint8

const (
	NormNone Normalization = iota
	NormNFC
	NormNFKC
)

func (n Normalization) String() string {
	switch n {
	case NormNFC:
		return "nfc"
	case NormNFKC:
		return "nfkc"
	default:
		return "none"
	}
}

// ParseNormalization maps "nfc", "nfkc" or "none" to a Normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return NormNone, nil
	case "nfc":
		return NormNFC, nil
	case "nfkc":
		return NormNFKC, nil
	}
	return NormNone, fmt.Errorf("unknown normalization %q (want nfc, nfkc or none)", s)
}

func (n Normalization) form() (norm.Form, bool) {
	switch n {
	case NormNFC:
		return norm.NFC, true
	case NormNFKC:
		return norm.NFKC, true
	}
	return 0, false
}

// Apply normalizes s.
func (n Normalization) Apply(s string) string {
	form, ok := n.form()
	if !ok || form.IsNormalString(s) {
		return s
	}
	return form.String(s)
}

// bytes is the FileSet.LoadTransformed hook for n.
func (n Normalization) bytes(b []byte) ([]byte, bool) {
	form, ok := n.form()
	if !ok || form.IsNormal(b) {
		return b, false
	}
	return form.Bytes(b), true
}

// Options configures the batch driver.
type Options struct {
	MaxTags        int
	Normalize      Normalization
	MaxDiagnostics int
	// Jobs bounds ParseDir parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, if set, stores per-file results between runs.
	Cache  *DiskCache
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o Options) tagOptions() tags.Options {
	return tags.Options{MaxTags: o.MaxTags}
}
