// Package mimetype resolves the content type the HTTP surface reports
// for a served file. A static extension table handles the common web
// types cheaply; github.com/gabriel-vasile/mimetype (vendored by
// rclone-rclone's compress backend in the example pack, used there to
// classify archive members) sniffs from content when the extension is
// absent, unrecognized, or generic.
package mimetype
