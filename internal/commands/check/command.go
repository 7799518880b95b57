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

package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arenner/weft/internal/commands/shared"
	"github.com/arenner/weft/internal/log"
	"github.com/arenner/weft/internal/output"
	"github.com/arenner/weft/pkg/workflow/expression"
)

// NewCommand creates the check command
func NewCommand() *cobra.Command {
	var (
		contextPath string
		inheritEnv  bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "check <condition>",
		Short: "Validate and evaluate a condition expression",
		Long: `Check normalizes a condition expression, validates its syntax, reports
references the run context cannot satisfy, and evaluates it.

The condition grammar supports &&, ||, !, == and != comparisons,
.includes(...) membership tests, and bare truthiness. A surrounding
${{ ... }} wrapper is stripped before validation.

Exit codes:
  0  condition is valid and evaluated to true
  1  condition is valid and evaluated to false
  2  condition syntax is invalid
  3  unresolved references (only with --strict)`,
		Example: `  # Example 1: Evaluate a guard against a context file
  weft check 'inputs.deploy && env.REGION == "us"' --context ctx.yaml

  # Example 2: Accept the manifest wrapper syntax unchanged
  weft check '${{ steps.build.output.ok }}' --context ctx.yaml

  # Example 3: Fail when the context is missing referenced values
  weft check 'inputs.missing == null' --context ctx.yaml --strict`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], contextPath, inheritEnv, strict)
		},
	}

	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "Path to run context YAML file")
	cmd.Flags().BoolVar(&inheritEnv, "inherit-env", false, "Seed the env table from the process environment")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the expression references values missing from the context")

	return cmd
}

func runCheck(cmd *cobra.Command, raw, contextPath string, inheritEnv, strict bool) error {
	useJSON := shared.GetJSON()

	ctx, err := shared.LoadRunContext(contextPath, inheritEnv)
	if err != nil {
		if useJSON {
			output.EmitJSONError("check", []output.JSONError{{
				Code:       shared.ErrorCodeFileNotFound,
				Message:    err.Error(),
				Suggestion: "Check that the context file exists and is valid YAML",
			}})
			return &shared.ExitError{Code: shared.ExitEvaluationFailed, Message: ""}
		}
		return shared.NewEvaluationError("loading run context", err)
	}

	normalized := expression.NormalizeCondition(raw)

	if err := expression.ValidateCondition(normalized); err != nil {
		if useJSON {
			output.EmitJSONError("check", []output.JSONError{{
				Code:       shared.ErrorCodeInvalidExpression,
				Message:    err.Error(),
				Suggestion: "Supported operators are ==, !=, &&, ||, ! and .includes(...)",
			}})
			return &shared.ExitError{Code: shared.ExitInvalidExpression, Message: ""}
		}
		return shared.NewInvalidExpressionError("invalid condition", err)
	}

	cfg := log.FromEnv()
	if shared.GetVerbose() {
		cfg.Level = "debug"
	}
	logger := log.WithComponent(log.New(cfg), "check")

	unresolved := expression.FindUnresolvedReferences(ctx, normalized)
	result := expression.EvaluateCondition(ctx, normalized)

	logger.Debug("evaluated condition",
		log.String(log.RunIDKey, ctx.RunID),
		log.String("expression", normalized),
		log.Bool("result", result),
		log.Int("unresolved", len(unresolved)),
	)

	if useJSON {
		type checkResponse struct {
			output.JSONResponse
			Expression string   `json:"expression"`
			Result     bool     `json:"result"`
			Unresolved []string `json:"unresolved,omitempty"`
		}
		if err := output.EmitJSON(checkResponse{
			JSONResponse: output.JSONResponse{
				Version: "1.0",
				Command: "check",
				Success: true,
			},
			Expression: normalized,
			Result:     result,
			Unresolved: unresolved,
		}); err != nil {
			return err
		}
	} else {
		cmd.Printf("%t\n", result)
		if !shared.GetQuiet() {
			for _, ref := range unresolved {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unresolved reference %s\n", ref)
			}
		}
	}

	if strict && len(unresolved) > 0 {
		return &shared.ExitError{
			Code:    shared.ExitUnresolvedBindings,
			Message: fmt.Sprintf("%d unresolved reference(s)", len(unresolved)),
		}
	}
	if !result {
		return &shared.ExitError{Code: shared.ExitEvaluationFailed, Message: ""}
	}
	return nil
}
