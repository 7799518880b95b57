// Copyright 2025 Alex Renner
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shared

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/arenner/weft/pkg/errors"
	"github.com/arenner/weft/pkg/workflow/expression"
)

// contextFile is the on-disk shape of a run context: three optional tables
// mirroring the expression roots.
type contextFile struct {
	Env    map[string]string `yaml:"env"`
	Inputs map[string]any    `yaml:"inputs"`
	Steps  map[string]any    `yaml:"steps"`
}

// LoadRunContext builds a run context from an optional YAML context file.
// When inheritEnv is set, the process environment seeds the env table first,
// so file entries win on conflict.
func LoadRunContext(path string, inheritEnv bool) (*expression.RunContext, error) {
	ctx := expression.NewRunContext()

	if inheritEnv {
		for _, entry := range os.Environ() {
			if name, value, ok := strings.Cut(entry, "="); ok {
				ctx.SetEnv(name, value)
			}
		}
	}

	if path == "" {
		return ctx, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &pkgerrors.NotFoundError{Resource: "context file", ID: path}
		}
		return nil, pkgerrors.Wrap(err, "reading context file")
	}

	var file contextFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &pkgerrors.ConfigError{
			Key:    "context",
			Reason: "context file is not valid YAML",
			Cause:  err,
		}
	}

	for name, value := range file.Env {
		ctx.SetEnv(name, value)
	}
	for name, value := range file.Inputs {
		ctx.SetInput(name, NormalizeYAML(value))
	}
	for stepID, value := range file.Steps {
		ctx.SetStepOutput(stepID, NormalizeYAML(value))
	}

	return ctx, nil
}

// NormalizeYAML rewrites yaml.v3's map[string]any/[]any trees in place so
// nested values match the JSON value shapes the resolver navigates.
// yaml.v3 already decodes mappings with string keys into map[string]any;
// this walk exists for mixed documents where a nested mapping decoded into
// map[any]any via an untyped field.
func NormalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = NormalizeYAML(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprintf("%v", key)] = NormalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = NormalizeYAML(item)
		}
		return v
	default:
		return value
	}
}
