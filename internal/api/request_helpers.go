package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/api/shared"
	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/query"
)

// getUserIDFromContext returns the caller set by the auth middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}

// parseID trims and parses a UUID, reporting failures against field.
func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(field, "is required", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a valid UUID", domain.ErrInvalidID)
	}
	return id, nil
}

func parseOptionalID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// getPathUUID parses a chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	return parseID(paramName, chi.URLParam(r, paramName))
}

// handleUserIDAndPathUUID extracts the caller and a UUID path parameter,
// writing the error response itself when either is missing or invalid.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid "+paramName,
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// decodeAndValidate decodes the body into req and runs its validate tags,
// writing a 400 on failure. normalize, if non-nil, runs in between.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, normalize func()) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		message := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			message = "Request body is required"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
		return false
	}
	if normalize != nil {
		normalize()
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// parseTaskFilter reads the task search parameters from q. Blank values
// count as absent; unrecognized parameters are ignored.
func parseTaskFilter(q url.Values) (query.Filter, error) {
	var f query.Filter

	get := func(key string) (string, bool) {
		v := strings.TrimSpace(q.Get(key))
		return v, v != ""
	}

	if v, ok := get("project_id"); ok {
		id, err := parseID("project_id", v)
		if err != nil {
			return f, err
		}
		f.ProjectID = &id
	}
	if v, ok := get("assigned_user_id"); ok {
		id, err := parseID("assigned_user_id", v)
		if err != nil {
			return f, err
		}
		f.AssignedUserID = &id
	}
	if v, ok := get("status"); ok {
		s := domain.TaskStatus(v)
		f.Status = &s
	}
	if v, ok := get("priority"); ok {
		p := domain.TaskPriority(v)
		f.Priority = &p
	}
	if v, ok := get("comment_keyword"); ok {
		f.CommentKeyword = &v
	}

	ints := []struct {
		key string
		dst **int
	}{
		{"due_in_days", &f.DueInDays},
		{"limit", &f.Limit},
		{"offset", &f.Offset},
	}
	for _, p := range ints {
		v, ok := get(p.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, domain.NewValidationError(p.key, "must be an integer", nil)
		}
		*p.dst = &n
	}

	return f, nil
}
