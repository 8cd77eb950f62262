package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fairwaylabs/clubfit/internal/auth"
	"github.com/fairwaylabs/clubfit/internal/middleware"
	"github.com/fairwaylabs/clubfit/internal/models"
	"github.com/fairwaylabs/clubfit/internal/storage"
)

// sections is the fixed set of dashboard sections. Anything else redirects
// to getting-started.
var sections = map[string]bool{
	"getting-started":  true,
	"schedule-swing":   true,
	"schedule-fitting": true,
	"fitting-progress": true,
	"account-history":  true,
	"profile":          true,
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "home.html", &pageData{
		User: s.optionalUsername(r),
	})
}

func (s *Server) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", &pageData{})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := strings.TrimSpace(r.PostFormValue("password"))
	if username == "" || password == "" {
		setFlash(w, "Username and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := s.auth.Register(r.Context(), username, password)
	if errors.Is(err, storage.ErrUsernameTaken) {
		setFlash(w, "User already exists.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.logger.Info("user registered", "username", username)
	setFlash(w, "Account created. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", &pageData{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := strings.TrimSpace(r.PostFormValue("password"))

	_, err := s.auth.Authenticate(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		setFlash(w, "Invalid username or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	token, err := s.sessions.Issue(username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Info("user logged in", "username", username)
	setFlash(w, "Logged in successfully.")
	http.Redirect(w, r, "/dashboard/getting-started", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	setFlash(w, "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) dashboardIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard/getting-started", http.StatusSeeOther)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	if !sections[section] {
		http.Redirect(w, r, "/dashboard/getting-started", http.StatusSeeOther)
		return
	}

	username := middleware.Username(r.Context())
	data := &pageData{
		User:    username,
		Section: section,
	}

	switch section {
	case "fitting-progress", "account-history":
		fittings, err := s.store.ListFittings(r.Context(), username)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data.Fittings = fittings
	case "profile":
		profile, err := s.store.GetProfile(r.Context(), username)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		if profile == nil {
			profile = &models.Profile{}
		}
		data.Profile = profile
	}

	s.render(w, r, "dashboard.html", data)
}

func (s *Server) schedule(w http.ResponseWriter, r *http.Request) {
	kind := r.PostFormValue("kind")
	if kind != models.KindSwing {
		kind = models.KindFitting
	}
	back := "/dashboard/schedule-fitting"
	if kind == models.KindSwing {
		back = "/dashboard/schedule-swing"
	}

	date := strings.TrimSpace(r.PostFormValue("date"))
	timeOfDay := strings.TrimSpace(r.PostFormValue("time"))
	if date == "" || timeOfDay == "" {
		setFlash(w, "Date and time are required.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	username := middleware.Username(r.Context())
	fitting := &models.Fitting{
		Kind:        kind,
		ScheduledAt: date + " " + timeOfDay,
		Comments:    strings.TrimSpace(r.PostFormValue("comments")),
	}

	id, err := s.store.CreateFitting(r.Context(), username, fitting)
	if errors.Is(err, storage.ErrUnknownUser) {
		// session refers to an account that no longer resolves
		s.rejectUnauthenticated(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.logger.Info("fitting scheduled", "username", username, "fitting_id", id, "kind", kind)
	setFlash(w, "Your request has been submitted.")
	http.Redirect(w, r, "/dashboard/fitting-progress", http.StatusSeeOther)
}

func (s *Server) saveProfile(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	// every field is optional free text, saved verbatim
	profile := &models.Profile{
		FullName: r.PostFormValue("full_name"),
		Address:  r.PostFormValue("address"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
		ClubSize: r.PostFormValue("club_size"),
	}

	err := s.store.SaveProfile(r.Context(), username, profile)
	if errors.Is(err, storage.ErrUnknownUser) {
		s.rejectUnauthenticated(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	setFlash(w, "Profile saved.")
	http.Redirect(w, r, "/dashboard/profile", http.StatusSeeOther)
}

// optionalUsername returns the logged-in username for pages outside the
// session guard, or empty string if the session cookie is absent or invalid.
func (s *Server) optionalUsername(r *http.Request) string {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	claims, err := s.sessions.Validate(cookie.Value)
	if err != nil {
		return ""
	}
	return claims.Username
}
