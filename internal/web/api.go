// Package web provides the HTTP front end for the SQL parser.
//
// This file contains the JSON API endpoints for programmatic access.

package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
	"github.com/cabewaldrop/sqlparse/internal/sql/parser"
)

// ============================================================================
// API Response Types
// ============================================================================

// APIResponse wraps all API responses with success/error info.
type APIResponse struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// SQLRequest is the body for both /api/parse and /api/tokenize.
type SQLRequest struct {
	SQL string `json:"sql"`
}

// ParseResponse is the payload of a successful parse.
type ParseResponse struct {
	Kind      string         `json:"kind"`
	SQL       string         `json:"sql"`
	Statement map[string]any `json:"statement"`
}

// TokenInfo describes one token of a tokenize response.
type TokenInfo struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// TokenizeResponse is the payload of a successful tokenize.
type TokenizeResponse struct {
	Tokens []TokenInfo `json:"tokens"`
}

// ============================================================================
// Helper Functions
// ============================================================================

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeSuccess writes a successful API response.
func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError writes an error API response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// writeParseError writes a 400 response describing a lexer or parser error.
func writeParseError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   err.Error(),
		Details: ErrorDetailsFor(err),
	})
}

// readSQL decodes and validates the request body. On failure it has
// already written the response and returns false.
func readSQL(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req SQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return "", false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	if err := ValidateSQL(req.SQL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return req.SQL, true
}

// ============================================================================
// API Handlers
// ============================================================================

// handleAPIParse parses one statement and returns its syntax tree.
// POST /api/parse
func (s *Server) handleAPIParse(w http.ResponseWriter, r *http.Request) {
	sql, ok := readSQL(w, r)
	if !ok {
		return
	}
	logger := GetLogger(r)

	start := time.Now()
	stmt, err := parser.Parse(sql)
	if err != nil {
		details := ErrorDetailsFor(err)
		logger.Debug("parse failed", "kind", details.Kind, "line", details.Line, "column", details.Column)
		writeParseError(w, err)
		return
	}

	kind := parser.StatementKind(stmt)
	logger.Debug("parsed statement", "kind", kind, "duration", time.Since(start))

	writeSuccess(w, ParseResponse{
		Kind:      kind,
		SQL:       stmt.String(),
		Statement: EncodeStatement(stmt),
	})
}

// handleAPITokenize returns the token stream of a statement.
// POST /api/tokenize
func (s *Server) handleAPITokenize(w http.ResponseWriter, r *http.Request) {
	sql, ok := readSQL(w, r)
	if !ok {
		return
	}

	tokens, err := lexer.Tokenize(sql)
	if err != nil {
		GetLogger(r).Debug("tokenize failed", "error", err)
		writeParseError(w, err)
		return
	}

	resp := TokenizeResponse{Tokens: make([]TokenInfo, 0, len(tokens))}
	for _, tok := range tokens {
		resp.Tokens = append(resp.Tokens, TokenInfo{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Line,
			Column:  tok.Column,
		})
	}
	writeSuccess(w, resp)
}
