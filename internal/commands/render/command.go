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

package render

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arenner/weft/internal/commands/shared"
	"github.com/arenner/weft/internal/jq"
	"github.com/arenner/weft/internal/log"
	"github.com/arenner/weft/internal/output"
	"github.com/arenner/weft/pkg/workflow/expression"
)

// NewCommand creates the render command
func NewCommand() *cobra.Command {
	var (
		contextPath string
		jqFilter    string
		inheritEnv  bool
	)

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template file against a run context",
		Long: `Render reads a YAML or JSON template file, substitutes every
${{ expr }} token against the run context, and prints the result.

Expressions reference three roots: env.NAME, inputs.NAME, and
steps.ID[.output].path. Tokens that do not resolve render as empty
strings; an unterminated ${{ passes through verbatim.

The run context is a YAML file with optional env, inputs, and steps
tables. With --inherit-env the process environment seeds the env table
and the file's entries win on conflict.`,
		Example: `  # Example 1: Render a template with a context file
  weft render template.yaml --context ctx.yaml

  # Example 2: Render using the process environment
  weft render template.yaml --inherit-env

  # Example 3: Emit JSON and narrow the result with a jq filter
  weft render template.yaml --context ctx.yaml --json --jq '.spec.name'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], contextPath, jqFilter, inheritEnv)
		},
	}

	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "Path to run context YAML file")
	cmd.Flags().StringVar(&jqFilter, "jq", "", "jq filter applied to the rendered value")
	cmd.Flags().BoolVar(&inheritEnv, "inherit-env", false, "Seed the env table from the process environment")

	return cmd
}

func runRender(cmd *cobra.Command, templatePath, contextPath, jqFilter string, inheritEnv bool) error {
	useJSON := shared.GetJSON()

	cfg := log.FromEnv()
	if shared.GetVerbose() {
		cfg.Level = "debug"
	}
	logger := log.WithComponent(log.New(cfg), "render")

	ctx, err := shared.LoadRunContext(contextPath, inheritEnv)
	if err != nil {
		if useJSON {
			output.EmitJSONError("render", []output.JSONError{{
				Code:       shared.ErrorCodeFileNotFound,
				Message:    err.Error(),
				Suggestion: "Check that the context file exists and is valid YAML",
			}})
			return &shared.ExitError{Code: shared.ExitEvaluationFailed, Message: ""}
		}
		return shared.NewEvaluationError("loading run context", err)
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		if useJSON {
			output.EmitJSONError("render", []output.JSONError{{
				Code:       shared.ErrorCodeFileNotFound,
				Message:    fmt.Sprintf("failed to read template file: %v", err),
				Suggestion: "Check that the template path is correct",
			}})
			return &shared.ExitError{Code: shared.ExitEvaluationFailed, Message: ""}
		}
		return shared.NewEvaluationError("reading template file", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		if useJSON {
			output.EmitJSONError("render", []output.JSONError{{
				Code:       shared.ErrorCodeInvalidYAML,
				Message:    fmt.Sprintf("template is not valid YAML: %v", err),
				Suggestion: "Check template syntax and indentation",
			}})
			return &shared.ExitError{Code: shared.ExitEvaluationFailed, Message: ""}
		}
		return shared.NewEvaluationError("parsing template file", err)
	}

	logger.Debug("rendering template",
		log.String(log.RunIDKey, ctx.RunID),
		log.String("template", templatePath),
	)

	rendered := expression.InterpolateValue(ctx, shared.NormalizeYAML(doc))

	if jqFilter != "" {
		logger.Debug("applying jq filter", log.String("filter", jqFilter))
		executor := jq.NewExecutor(0, 0)
		rendered, err = executor.Execute(cmd.Context(), jqFilter, rendered)
		if err != nil {
			if useJSON {
				output.EmitJSONError("render", []output.JSONError{{
					Code:       shared.ErrorCodeInvalidFilter,
					Message:    fmt.Sprintf("jq filter failed: %v", err),
					Suggestion: "Check the filter syntax with 'jq' locally",
				}})
				return &shared.ExitError{Code: shared.ExitEvaluationFailed, Message: ""}
			}
			return shared.NewEvaluationError("applying jq filter", err)
		}
	}

	if useJSON {
		type renderResponse struct {
			output.JSONResponse
			Result any `json:"result"`
		}
		return output.EmitJSON(renderResponse{
			JSONResponse: output.JSONResponse{
				Version: "1.0",
				Command: "render",
				Success: true,
			},
			Result: rendered,
		})
	}

	encoded, err := yaml.Marshal(rendered)
	if err != nil {
		return shared.NewEvaluationError("encoding rendered output", err)
	}
	cmd.Print(string(encoded))
	return nil
}
