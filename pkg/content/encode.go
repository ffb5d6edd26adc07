// Package content implements the stateless file transforms: the base64
// transport encoding of a documentation file and the GitHub contents-API
// payload wrapping it. Output is a deterministic function of input.
package content

import (
	"encoding/base64"
	"io/ioutil"
	"strings"

	"github.com/huandu/xstrings"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const previewRunes = 100

// Report summarizes one encoding, matching what the operator wants to eyeball:
// character counts rather than byte counts, and a short content preview.
type Report struct {
	OriginalChars int
	EncodedChars  int
	Lines         int
	Preview       string
}

// Encode produces the transport encoding: standard-alphabet base64 of the
// raw bytes. Empty input encodes to the empty string.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode reverses Encode byte-for-byte.
func Decode(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decoding transport encoding")
	}
	return raw, nil
}

// Describe builds the report for raw content and its encoding.
func Describe(raw []byte, encoded string) Report {
	text := string(raw)
	preview := text
	if xstrings.Len(text) > previewRunes {
		preview = xstrings.Slice(text, 0, previewRunes) + "..."
	}
	return Report{
		OriginalChars: xstrings.Len(text),
		EncodedChars:  len(encoded),
		Lines:         strings.Count(text, "\n") + 1,
		Preview:       preview,
	}
}

// EncodeFile reads in, writes its transport encoding to out, and logs the
// report. Nothing is written when the input cannot be read.
func EncodeFile(logger *log.Logger, in, out string) (Report, error) {
	raw, err := ioutil.ReadFile(in)
	if err != nil {
		return Report{}, errors.Wrapf(err, "reading %s", in)
	}

	encoded := Encode(raw)
	report := Describe(raw, encoded)

	logger.Infof("read %s", in)
	logger.Infof("original size: %d characters", report.OriginalChars)
	logger.Infof("encoded size: %d characters", report.EncodedChars)
	logger.Infof("lines: %d", report.Lines)
	logger.Debugf("content preview: %s", report.Preview)

	if err := ioutil.WriteFile(out, []byte(encoded), 0644); err != nil {
		return report, errors.Wrapf(err, "writing %s", out)
	}

	logger.Infof("encoded content saved to: %s", out)
	return report, nil
}

// DecodeFile reverses EncodeFile.
func DecodeFile(logger *log.Logger, in, out string) error {
	encoded, err := ioutil.ReadFile(in)
	if err != nil {
		return errors.Wrapf(err, "reading %s", in)
	}

	raw, err := Decode(strings.TrimSpace(string(encoded)))
	if err != nil {
		return errors.Wrapf(err, "decoding %s", in)
	}

	if err := ioutil.WriteFile(out, raw, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}

	logger.Infof("decoded content saved to: %s", out)
	return nil
}
