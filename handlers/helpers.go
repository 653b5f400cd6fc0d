package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NexusOfThings/registration-system/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // programmer error: non-pointer destination
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		return err
	}

	return nil
}

// failureResponse writes the uniform {success:false, message} envelope every
// failure path uses, except not-found lookups (see notFoundResponse).
func failureResponse(w http.ResponseWriter, status int, message string) {
	if err := writeJSON(w, status, jsonResponse{"success": false, "message": message}); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// notFoundResponse writes the {error} shape the detail endpoint's consumers
// expect for missing events.
func notFoundResponse(w http.ResponseWriter, message string) {
	if err := writeJSON(w, http.StatusNotFound, jsonResponse{"error": message}); err != nil {
		slog.Error("failed to write not-found response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	slog.Error("internal server error", slog.Any("error", err))
	failureResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// mapServiceErrorToHTTP translates service-layer sentinels into structured
// responses. Validation failures surface their own message verbatim; raw
// internal errors never reach the client.
func mapServiceErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrUnknownEvent),
		errors.Is(err, services.ErrDuplicateTeamName),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrIdeaDescriptionRequired),
		errors.Is(err, services.ErrIdeaFileRequired),
		errors.Is(err, services.ErrInvalidFileType),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrCoordinatorLimit):
		failureResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrStorageNotConfigured):
		failureResponse(w, http.StatusInternalServerError, services.ErrStorageNotConfigured.Error())
	case errors.Is(err, services.ErrUploadFailed):
		failureResponse(w, http.StatusInternalServerError, services.ErrUploadFailed.Error())
	case errors.Is(err, services.ErrCodeGenerationExhausted):
		slog.Error("team code generation exhausted")
		failureResponse(w, http.StatusInternalServerError, "Could not assign a team code. Please try again.")

	case errors.Is(err, services.ErrEventNotFound):
		notFoundResponse(w, "Event not found")
	case errors.Is(err, services.ErrParticipantNotFound):
		notFoundResponse(w, "Registration not found")

	case errors.Is(err, services.ErrInvalidCredentials):
		failureResponse(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())

	case errors.Is(err, services.ErrStoreUnavailable):
		slog.Error("data store unavailable", slog.Any("error", err))
		failureResponse(w, http.StatusServiceUnavailable, "service temporarily unavailable")

	default:
		serverErrorResponse(w, err)
	}
}
