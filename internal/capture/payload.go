package capture

import (
	"encoding/base64"
	"fmt"
)

// Payload is the binary image captured or selected for one submission.
// It has no identity of its own and is handed to the submission client once.
type Payload struct {
	Data     []byte
	MIMEType string
}

// Empty reports whether the payload carries no image data.
func (p Payload) Empty() bool {
	return len(p.Data) == 0
}

// PreviewDataURL encodes the payload for immediate display. The preview is
// independent from the bytes handed to the submission client.
func (p Payload) PreviewDataURL() string {
	if p.Empty() {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", p.MIMEType, base64.StdEncoding.EncodeToString(p.Data))
}
