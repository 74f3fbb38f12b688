package notes

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// NewAttachment encodes data as a base64 data URL. The type is picked from
// the sniffed MIME type; the id is left for the store to assign.
func NewAttachment(name string, data []byte) Attachment {
	mime := http.DetectContentType(data)
	typ := AttachmentFile
	if strings.HasPrefix(mime, "image/") {
		typ = AttachmentImage
	}
	return Attachment{
		Type: typ,
		URL:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Name: name,
	}
}

// MIMEType returns the media type of a data URL attachment, or "" for
// external URLs.
func (a Attachment) MIMEType() string {
	rest, ok := strings.CutPrefix(a.URL, "data:")
	if !ok {
		return ""
	}
	mime, _, _ := strings.Cut(rest, ";")
	mime, _, _ = strings.Cut(mime, ",")
	return mime
}

// Size returns the decoded payload size of a base64 data URL, or -1
func (a Attachment) Size() int {
	_, payload, ok := strings.Cut(a.URL, ";base64,")
	if !ok || !strings.HasPrefix(a.URL, "data:") {
		return -1
	}
	return base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload[max(0, len(payload)-2):], "=")
}
