// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package util holds small decoding and pooling helpers shared by the code
// generator.
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// UnmarshalJSON parses the JSON encoded data and stores the result in the
// value pointed to by x. Unlike the standard json.Unmarshal it rejects
// trailing garbage after the top-level value.
func UnmarshalJSON(bs []byte, x any) error {
	decoder := json.NewDecoder(bytes.NewReader(bs))
	if err := decoder.Decode(x); err != nil {
		return err
	}

	// Decode validates only the first JSON value in bs; check that nothing
	// but whitespace follows it.
	tok, err := decoder.Token()
	if tok != nil {
		return fmt.Errorf("error: invalid character '%s' after top-level value", tok)
	}
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Unmarshal parses YAML or JSON encoded data and stores the result in the
// value pointed to by x. JSON input takes the strict path; everything else
// goes through the YAML-to-JSON conversion.
func Unmarshal(bs []byte, x any) error {
	if json.Valid(bs) {
		return UnmarshalJSON(bs, x)
	}
	return yaml.Unmarshal(bs, x)
}
