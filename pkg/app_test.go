package mallctl

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateLoggingConfigurationFormats(t *testing.T) {
	for _, output := range []string{"text", "json", "bunyan", "message"} {
		app := NewApplication("mallctl")
		app.Log = log.New()
		app.Output = output
		assert.NoError(t, app.UpdateLoggingConfiguration(), output)
	}
}

func TestUpdateLoggingConfigurationRejectsUnknownFormat(t *testing.T) {
	app := NewApplication("mallctl")
	app.Log = log.New()
	app.Output = "xml"

	err := app.UpdateLoggingConfiguration()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestUpdateLoggingConfigurationVerbose(t *testing.T) {
	app := NewApplication("mallctl")
	app.Log = log.New()
	app.Verbose = true

	require.NoError(t, app.UpdateLoggingConfiguration())
	assert.Equal(t, log.DebugLevel, app.Log.Level)
}

func TestMessageOnlyFormatter(t *testing.T) {
	formatter := &MessageOnlyFormatter{}
	out, err := formatter.Format(&log.Entry{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}
