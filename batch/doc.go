// Package batch implements the grading run: read the student rows, evaluate
// them in order and write the status and minimum final score columns back in a
// single request.
package batch
