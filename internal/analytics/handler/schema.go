package handler

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/compute.schema.json
var computeSchemaJSON string

// тело /analytics/compute проверяется только по форме конверта;
// отдельные кривые записи внутри массивов пропускаются позже
var computeSchema = jsonschema.MustCompileString("compute.schema.json", computeSchemaJSON)
