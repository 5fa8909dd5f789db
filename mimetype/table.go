package mimetype

import "strings"

// DefaultType is returned when neither the extension table nor content
// sniffing can classify a file.
const DefaultType = "application/octet-stream"

// byExt covers the extensions httpapi is most likely to serve directly;
// anything else falls through to content sniffing in Detect.
var byExt = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".mjs":  "text/javascript; charset=utf-8",
	".json": "application/json",
	".xml":  "application/xml",
	".txt":  "text/plain; charset=utf-8",
	".csv":  "text/csv; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".ico":  "image/x-icon",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".zip":  "application/zip",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".7z":   "application/x-7z-compressed",
	".rar":  "application/vnd.rar",
	".msi":  "application/x-msi",
	".deb":  "application/vnd.debian.binary-package",
	".rpm":  "application/x-rpm",
	".dmg":  "application/x-apple-diskimage",
	".apk":  "application/vnd.android.package-archive",
	".wasm": "application/wasm",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
}

// ForExt returns the table's content type for ext (including the
// leading dot, as vfs.Path.Ext reports it), case-insensitively, and
// whether ext was recognized at all.
func ForExt(ext string) (string, bool) {
	t, ok := byExt[strings.ToLower(ext)]
	return t, ok
}
