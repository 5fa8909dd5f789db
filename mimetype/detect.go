package mimetype

import (
	extmime "github.com/gabriel-vasile/mimetype"

	"github.com/jmgilman/vfs"
)

// sniffLimit bounds how much of a file Detect reads before giving up
// and falling back to DefaultType; mimetype's signature set only ever
// needs the first few KiB.
const sniffLimit = 3072

// ForPath resolves a content type from p's extension alone, without
// touching file content. Use Detect when a content sample is available
// and a more reliable answer is worth the read.
func ForPath(p vfs.Path) string {
	if t, ok := ForExt(p.Ext()); ok {
		return t
	}
	return DefaultType
}

// Detect resolves a content type for p, preferring the extension table
// and falling back to sniffing sample's magic bytes via
// github.com/gabriel-vasile/mimetype when the extension is missing or
// unrecognized. sample need not be the whole file; the first
// sniffLimit bytes are sufficient.
func Detect(p vfs.Path, sample []byte) string {
	if t, ok := ForExt(p.Ext()); ok {
		return t
	}
	if len(sample) == 0 {
		return DefaultType
	}
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}
	m := extmime.Detect(sample)
	if m == nil {
		return DefaultType
	}
	return m.String()
}
