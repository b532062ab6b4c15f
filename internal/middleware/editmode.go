package middleware

import (
	"context"
	"net/http"
)

const editModeKey = contextKey("editMode")

// EditMode checks for an "edit=true" query parameter on an admin session and
// sets a corresponding flag in the request context. Templates use the flag to
// expose the inline content editor on public pages.
func EditMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		editMode := r.URL.Query().Get("edit") == "true" && GetUserInfo(r.Context()).IsAdmin
		ctx := context.WithValue(r.Context(), editModeKey, editMode)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsEditMode returns true if the edit-mode flag is set in the request context.
func IsEditMode(ctx context.Context) bool {
	edit, ok := ctx.Value(editModeKey).(bool)
	return ok && edit
}
