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

// Error codes for structured JSON output
const (
	// Validation errors (E001-E099)
	ErrorCodeInvalidYAML        = "E001" // Invalid YAML syntax
	ErrorCodeInvalidExpression  = "E002" // Malformed condition expression
	ErrorCodeUnresolvedRef      = "E003" // Reference not satisfied by run context
	ErrorCodeInvalidFilter      = "E004" // Invalid jq filter

	// Input errors (E100-E199)
	ErrorCodeFileNotFound = "E101" // File not found
	ErrorCodeInvalidInput = "E102" // Invalid input format

	// Resource errors (E200-E299)
	ErrorCodeInternal = "E201" // Internal error
)
