// Package expression implements the ${{ ... }} template language used in
// workflow manifests.
//
// All resolution happens against a RunContext, which exposes three lookup
// tables: environment variables, workflow inputs, and step outputs.
// Expressions address them with three roots:
//
//   - env.NAME                         environment variable
//   - inputs.name[.path.to.field]      workflow input value
//   - steps.step_id[.output][.path]    step output field
//
// Paths navigate nested JSON values with dot notation; array elements are
// addressed either by a bare numeric segment (items.0.id) or a bracket
// suffix (items[0].id).
//
// On top of path resolution the package provides:
//
//   - InterpolateValue / InterpolateString: substitute ${{ expr }} tokens
//     inside arbitrary JSON trees, degrading unresolved tokens to "".
//   - EvaluateCondition: boolean step guards with ||, &&, leading !,
//     == / !=, EXPR.includes(EXPR) and bare truthiness.
//   - FindUnresolvedReferences: pre-flight diagnostics listing context
//     references that do not resolve.
//   - NormalizeCondition / ValidateCondition: wrapper stripping and
//     syntactic validation for condition strings.
//
// Resolution never fails with an error: absence is reported through ok
// booleans, and the interpolator and evaluator degrade gracefully on
// malformed input. Every function takes a read-only view of the RunContext,
// so concurrent readers need no locking here; synchronization belongs to
// whoever mutates the context.
package expression
