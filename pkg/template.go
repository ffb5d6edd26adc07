package mallctl

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/juju/errors"
)

// Render expands expr as a text template against vars, with the sprig
// function set available. Unknown keys are errors rather than "<no value>"
// so a typo in a pipeline aborts before anything executes.
func Render(name string, expr string, vars map[string]interface{}) (string, error) {
	t := template.New(name)
	t.Option("missingkey=error")

	tmpl, err := t.Funcs(sprig.TxtFuncMap()).Parse(expr)
	if err != nil {
		return "", errors.Annotatef(err, "parsing template %s", name)
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, vars); err != nil {
		return "", errors.Annotatef(err, "rendering template %s against %v", name, vars)
	}

	return buff.String(), nil
}
