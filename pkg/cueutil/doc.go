// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user CUE files against an embedded schema.
//
// Decode runs the usual three steps: compile the embedded schema, compile the
// user data and unify it with a schema definition, then validate and decode.
// Errors name the offending field in JSON-path notation:
//
//	//go:embed config_schema.cue
//	var schema string
//
//	var m map[string]any
//	if err := cueutil.Decode(schema, "#Config", data, "config.cue", &m); err != nil {
//	    return err // config.cue: selection.max_attempts: invalid value -1
//	}
package cueutil
