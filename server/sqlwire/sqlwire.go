// Package sqlwire is the request/response protocol between tinysql clients
// and the server: length-prefixed JSON frames over TCP.
package sqlwire

import "github.com/tuannm99/tinysql/internal/sql/executor"

// ExecuteRequest carries one script; it may hold several statements.
type ExecuteRequest struct {
	ID     uint64 `json:"id"`
	Script string `json:"script"`
}

// ExecuteResponse is the response for a request ID. When a statement fails,
// Results holds the results of the statements before it and Error is set.
// FailedCommand names the failed statement; it is empty for parse errors.
type ExecuteResponse struct {
	ID            uint64             `json:"id"`
	Results       []*executor.Result `json:"results,omitempty"`
	Error         string             `json:"error,omitempty"`
	FailedCommand string             `json:"failed_command,omitempty"`
}
