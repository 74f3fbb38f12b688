package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestNewAttachment(t *testing.T) {
	img := NewAttachment("a.png", pngHeader)
	assert.Equal(t, AttachmentImage, img.Type)
	assert.Equal(t, "a.png", img.Name)
	assert.Empty(t, img.ID)
	assert.Equal(t, "image/png", img.MIMEType())
	assert.Equal(t, len(pngHeader), img.Size())

	txt := NewAttachment("notes.txt", []byte("hello"))
	assert.Equal(t, AttachmentFile, txt.Type)
	assert.Equal(t, "text/plain", txt.MIMEType())
	assert.Equal(t, 5, txt.Size())
}

func TestAttachmentExternalURL(t *testing.T) {
	a := Attachment{Type: AttachmentImage, URL: "https://example.com/x.png"}
	assert.Equal(t, "", a.MIMEType())
	assert.Equal(t, -1, a.Size())
}
