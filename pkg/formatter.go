package mallctl

import (
	"fmt"

	"github.com/mitchellh/colorstring"
	"github.com/sirupsen/logrus"
)

type textFormatter struct {
	colorize *colorstring.Colorize
	colors   map[logrus.Level]string
}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var prefix = "[" + f.colors[entry.Level] + "]"
	app := entry.Data["app"]
	if app != nil {
		switch app := app.(type) {
		case string:
			command := entry.Data["command"]
			if command != nil {
				switch command := command.(type) {
				case string:
					prefix = fmt.Sprintf("%s%s.%s ≫ ", prefix, app, command)
				}
			} else {
				prefix = fmt.Sprintf("%s%s ≫ ", prefix, app)
			}
		}
	}
	return []byte(f.colorize.Color(fmt.Sprintf("%s%s\n", prefix, entry.Message))), nil
}

// MessageOnlyFormatter prints the bare message, which keeps command output
// relayed through the logger byte-for-byte readable.
type MessageOnlyFormatter struct {
}

func (f *MessageOnlyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}
