// Package form compiles a model.FormModel into a Form that runs validation
// passes. Every pass rebuilds the outcome mapping from scratch in declaration
// order; Check then splices in server errors and produces the decision that
// gates submission and names the field to focus.
package form
