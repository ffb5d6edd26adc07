package content

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Payload is the request body for a GitHub contents-API file update: the
// commit message, the transport-encoded file content, and the blob SHA of
// the revision being replaced. Field order is fixed so identical inputs
// serialize to identical bytes.
type Payload struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// NewPayload wraps raw file content into an update payload.
func NewPayload(message string, raw []byte, sha string) Payload {
	return Payload{
		Message: message,
		Content: Encode(raw),
		SHA:     sha,
	}
}

// Marshal serializes the payload with two-space indentation.
func (p Payload) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshalling payload")
	}
	return data, nil
}

// WritePayloadFile reads the input file, wraps it, and writes the payload
// JSON to out. Nothing is written when the input cannot be read.
func WritePayloadFile(logger *log.Logger, in, message, sha, out string) (Report, error) {
	raw, err := ioutil.ReadFile(in)
	if err != nil {
		return Report{}, errors.Wrapf(err, "reading %s", in)
	}

	payload := NewPayload(message, raw, sha)
	data, err := payload.Marshal()
	if err != nil {
		return Report{}, err
	}

	if err := ioutil.WriteFile(out, data, 0644); err != nil {
		return Report{}, errors.Wrapf(err, "writing %s", out)
	}

	report := Describe(raw, payload.Content)
	logger.Infof("payload created")
	logger.Infof("content size: %d characters", report.OriginalChars)
	logger.Infof("encoded size: %d characters", report.EncodedChars)
	logger.Infof("payload saved to: %s", out)

	return report, nil
}
