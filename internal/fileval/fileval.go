package fileval

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileBytes is the inclusive upper bound on attachment size (5MB).
const MaxFileBytes int64 = 5 * 1024 * 1024

// AllowedMediaTypes is the fixed allow-set for attachments. Anything else
// is rejected regardless of size.
var AllowedMediaTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/jpg",
}

// Result is a validation verdict. Reason is empty when OK.
type Result struct {
	OK     bool
	Reason string
}

// Validate decides whether a file with the declared media type and size is
// acceptable as an attachment. Pure predicate, no I/O. The type check runs
// before the size check, so a file failing both reports the type reason.
func Validate(mediaType string, sizeBytes int64) Result {
	if !typeAllowed(mediaType) {
		return Result{Reason: "file type not allowed: only PDF and JPG files are accepted"}
	}
	if sizeBytes > MaxFileBytes {
		return Result{Reason: "file exceeds the maximum size of 5MB"}
	}
	return Result{OK: true}
}

func typeAllowed(mediaType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	// Strip parameters ("image/jpeg; charset=...") before comparing.
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	for _, allowed := range AllowedMediaTypes {
		if mt == allowed {
			return true
		}
	}
	return false
}

// Attachment describes a local file accepted into a form. Attachments live
// in memory for the lifetime of the form; the remote API has no attachment
// endpoint, so they are never uploaded.
type Attachment struct {
	Name      string
	Path      string
	MediaType string
	SizeBytes int64
}

// MediaTypeOf derives a media type from the filename extension, the same
// way attachments are typed elsewhere: extension lookup, no sniffing.
func MediaTypeOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" {
		return ""
	}
	mt := mime.TypeByExtension(ext)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// Inspect stats path, derives its media type from the extension and runs
// Validate. The attachment descriptor is returned even when the verdict is
// a rejection so callers can report what was seen.
func Inspect(path string) (Attachment, Result, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Attachment{}, Result{}, err
	}
	if fi.IsDir() {
		return Attachment{}, Result{}, fmt.Errorf("%s is a directory", path)
	}
	a := Attachment{
		Name:      filepath.Base(path),
		Path:      path,
		MediaType: MediaTypeOf(path),
		SizeBytes: fi.Size(),
	}
	return a, Validate(a.MediaType, a.SizeBytes), nil
}

// PreviewDataURL reads the file and encodes it as a base64 data: URL, the
// representation the form preview uses. Callers should only pass files that
// passed Validate; the size cap is enforced again here as a backstop.
func PreviewDataURL(a Attachment) (string, error) {
	if a.SizeBytes > MaxFileBytes {
		return "", fmt.Errorf("%s: too large to preview", a.Name)
	}
	b, err := os.ReadFile(a.Path)
	if err != nil {
		return "", err
	}
	mt := a.MediaType
	if mt == "" {
		mt = "application/octet-stream"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
