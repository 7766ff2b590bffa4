package requests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"assustadus/internal/http/responses"
)

// maxBodyBytes caps request bodies; user payloads are tiny.
const maxBodyBytes = 1 << 20

// BindJSON reads a single JSON object from the request body into dst. Unknown
// fields, trailing data and malformed JSON are answered with 400 and false.
// Rule validation is left to the service layer.
func BindJSON[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	return bind(w, r, dst, false)
}

// BindOptionalJSON is BindJSON for bodies that may be left out: an empty
// body leaves dst at its zero value.
func BindOptionalJSON[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	return bind(w, r, dst, true)
}

func bind[T any](w http.ResponseWriter, r *http.Request, dst *T, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if allowEmpty {
				return true
			}
			responses.WriteBadRequest(w, "Request body is empty.")
			return false
		}
		responses.WriteErrorDetails(w, http.StatusBadRequest, "Invalid JSON payload.", err.Error())
		return false
	}

	if dec.More() {
		responses.WriteBadRequest(w, "Invalid JSON payload.")
		return false
	}

	return true
}
