// Package domain defines core types and errors for the suggest bounded context.
package domain

import "errors"

// ErrAnalysisFailed indicates the vision model returned output that could not
// be parsed into a Suggestion. The client should retry or fill fields by hand.
var ErrAnalysisFailed = errors.New("AI analysis failed")
