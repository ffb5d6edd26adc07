package mallctl

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/juju/errors"
	"github.com/xeipuuv/gojsonschema"
)

var probeSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"tcp":  map[string]interface{}{"type": "string", "minLength": 1},
		"http": map[string]interface{}{"type": "string", "minLength": 1},
	},
	"additionalProperties": false,
}

var stepSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"name"},
	"properties": map[string]interface{}{
		"name":  map[string]interface{}{"type": "string", "minLength": 1},
		"run":   map[string]interface{}{"type": "string"},
		"argv":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"shell": map[string]interface{}{"type": "boolean"},
		"dir":   map[string]interface{}{"type": "string"},
		"env": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": map[string]interface{}{"type": "string"},
		},
		"allow_failure": map[string]interface{}{"type": "boolean"},
		"wait":          map[string]interface{}{"type": "string"},
		"wait_for":      map[string]interface{}{"type": "array", "items": probeSchema},
	},
	"additionalProperties": false,
}

var pipelineSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"name", "steps"},
	"properties": map[string]interface{}{
		"name":  map[string]interface{}{"type": "string", "minLength": 1},
		"vars":  map[string]interface{}{"type": "object"},
		"steps": map[string]interface{}{"type": "array", "minItems": 1, "items": stepSchema},
	},
	"additionalProperties": false,
}

func validatePipelineDoc(doc map[string]interface{}) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(pipelineSchema))
	if err != nil {
		return errors.Annotate(err, "building pipeline schema")
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return errors.Annotate(err, "validating pipeline")
	}

	if !result.Valid() {
		var problems *multierror.Error
		for _, desc := range result.Errors() {
			problems = multierror.Append(problems, fmt.Errorf("%s", desc))
		}
		return errors.Annotate(problems.ErrorOrNil(), "invalid pipeline definition")
	}

	return nil
}
