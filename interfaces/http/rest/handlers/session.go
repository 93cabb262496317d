package handlers

import (
	"net/http"

	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/auth"
)

// sessionFromRequest rebuilds the session value from the user the auth
// middleware attached to the request context.
func sessionFromRequest(r *http.Request) (valueobjects.Session, bool) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return valueobjects.Session{}, false
	}
	return valueobjects.Session{
		UserID:      user.UserID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		AccessToken: user.AccessToken,
	}, true
}

// SessionResponse is the wire shape of a session. The access token is
// serialized here and nowhere else.
type SessionResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

func sessionResponse(sess valueobjects.Session) SessionResponse {
	return SessionResponse{
		UserID:      sess.UserID,
		DisplayName: sess.DisplayName,
		Email:       sess.Email,
		AccessToken: sess.AccessToken,
	}
}
