package http

import (
	"encoding/json"
	"net/http"

	"shortlog/pkg/problemdetails"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeProblem writes an RFC 7807 Problem Details response
func writeProblem(w http.ResponseWriter, problem *problemdetails.ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}

func internalError(w http.ResponseWriter, detail string) {
	writeProblem(w, problemdetails.New(
		http.StatusInternalServerError,
		problemdetails.TypeInternalError,
		"Internal Server Error",
		detail,
	))
}

func notFound(w http.ResponseWriter, code string) {
	writeProblem(w, problemdetails.New(
		http.StatusNotFound,
		problemdetails.TypeNotFound,
		"Not Found",
		"Short URL not found: "+code,
	))
}
