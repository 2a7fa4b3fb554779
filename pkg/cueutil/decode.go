// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the size of a user CUE file.
const DefaultMaxFileSize int64 = 1 << 20

// Decode validates data against the definition at schemaPath in schema and
// decodes the unified value into out. Fields the schema marks optional may be
// left unset.
func Decode(schema, schemaPath string, data []byte, filename string, out any) error {
	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return FormatError(userValue.Err(), filename)
	}

	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return FormatError(err, filename)
	}

	if err := unified.Decode(out); err != nil {
		return FormatError(err, filename)
	}
	return nil
}
