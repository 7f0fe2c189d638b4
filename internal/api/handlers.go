// internal/api/handlers.go
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"demo-pool/internal/pool"
)

// Login is the demo login boundary. The published demo credentials bypass
// normal credential verification and lease an account from the pool instead;
// the visitor lands in the application with a session cookie that re-attaches
// them to the same workspace on their next visit.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	if !a.Cfg.Demo.Enabled {
		http.Error(w, "demo mode is disabled", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if !a.isDemoLogin(email, password) {
		// Regular account authentication lives elsewhere; this surface
		// only serves the published demo credentials.
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	var returningToken string
	if c, err := r.Cookie(sessionCookie); err == nil {
		returningToken = c.Value
	}

	account, token, err := a.Pool.Acquire(r.Context(), returningToken)
	if errors.Is(err, pool.ErrPoolExhausted) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "We are preparing your demo environment, please try again shortly.",
		})
		return
	}
	if err != nil {
		a.Log.Error("demo login failed", zap.Error(err))
		http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.Cfg.Demo.SessionTTL.Std().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	a.Log.Info("demo login", zap.String("account", account.Email))
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

func (a *API) isDemoLogin(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.Cfg.Demo.DisplayEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Cfg.Demo.Password)) == 1
	return emailOK && passOK
}

// PoolStatus reports committed pool counts against the configured target.
func (a *API) PoolStatus(w http.ResponseWriter, r *http.Request) {
	available, active, err := a.Pool.Counts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"available": available,
		"active":    active,
		"target":    a.Pool.Target(),
	})
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
