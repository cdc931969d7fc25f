package handlers

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mvaidya/cricstats/cmd/server/auth"
)

type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// LoginHandler validates the configured admin credentials and issues a JWT
// for the protected endpoints. adminHash is a bcrypt hash, never plaintext.
func LoginHandler(env Env, a *auth.Authenticator, adminUser, adminHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds LoginCredentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if creds.Username == "" || creds.Password == "" {
			writeJSONError(w, "Wrong login or password", http.StatusUnauthorized)
			return
		}
		if creds.Username != adminUser {
			writeJSONError(w, "Wrong login or password", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(creds.Password)); err != nil {
			writeJSONError(w, "Wrong login or password", http.StatusUnauthorized)
			return
		}

		token, err := a.GenerateJWT(creds.Username)
		if err != nil {
			env.Logger.Error("failed to generate token", "error", err)
			writeJSONError(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		respondJSON(w, env.Logger, LoginResponse{Token: token, Username: creds.Username})
	}
}
