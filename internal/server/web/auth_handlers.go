package web

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/server/services"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgRegistered         = "User registered successfully"
	msgLoggedIn           = "Login successful"
	msgMissingCredentials = "Email and password are required"
)

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", pageData{Title: "Register"})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", pageData{Title: "Login"})
}

// readCredentials accepts a JSON body or a classic form post.
func readCredentials(r *http.Request) (services.Credentials, error) {
	var c services.Credentials

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			return c, err
		}
		return c, nil
	}

	if err := r.ParseForm(); err != nil {
		return c, err
	}
	c.Email = r.PostForm.Get("email")
	c.Password = r.PostForm.Get("password")
	return c, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	c, err := readCredentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.users.Register(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, msgUserExists)
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, msgMissingCredentials)
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, messageResponse{Message: msgRegistered})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	c, err := readCredentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.users.Login(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, msgMissingCredentials)
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, messageResponse{Message: msgLoggedIn})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

func setSessionCookie(w http.ResponseWriter, sess *services.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
