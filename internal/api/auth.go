package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/rolodex-hq/rolodex/internal/server"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields before they reach the service.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// EmailRequest is the body of POST /api/auth/request_email and
// POST /api/auth/forgot_password.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset_password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// sendMailAsync runs fn in the background with a detached context, the way
// registration and reset mail is always sent: a mail outage must not fail
// the HTTP request that triggered it.
func sendMailAsync(srv server.Server, what string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			srv.Logger.Error("background mail send failed", "mail", what, "error", err)
		}
	}()
}

// RegisterHandler creates a new user account and sends the verification
// email in the background. Responds 409 when the email or username is taken.
func RegisterHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		user, err := srv.Users.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				srv.Logger.Error("error registering user", "error", err)
				http.Error(w, "Error registering user", status)
				return
			}
			http.Error(w, "A user with this email or username already exists", status)
			return
		}

		sendMailAsync(srv, "verification", func(ctx context.Context) error {
			return srv.Email.SendVerification(ctx, user.Email, user.Username)
		})

		respondJSON(w, srv.Logger, http.StatusCreated, user)
	})
}

// LoginHandler authenticates a user and returns a bearer access token.
// Login is refused until the email address has been confirmed.
func LoginHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := srv.Users.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				srv.Logger.Error("error authenticating user", "error", err)
				http.Error(w, "Error authenticating user", status)
				return
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "Incorrect username or password, or email not confirmed", status)
			return
		}

		token, err := srv.Auth.CreateAccessToken(user.Username)
		if err != nil {
			srv.Logger.Error("error creating access token", "error", err)
			http.Error(w, "Error creating access token", http.StatusInternalServerError)
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	})
}

// ConfirmEmailHandler marks an email address as verified using the token
// from the verification mail.
func ConfirmEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		email, err := srv.Auth.EmailFromToken(token)
		if err != nil {
			http.Error(w, "Invalid email verification token", http.StatusUnprocessableEntity)
			return
		}

		user, err := srv.Users.GetByEmail(r.Context(), email)
		if err != nil {
			http.Error(w, "Verification error", http.StatusBadRequest)
			return
		}

		if user.Confirmed {
			respondMessage(w, srv.Logger, http.StatusOK, "Your email is already confirmed")
			return
		}

		if err := srv.Users.ConfirmEmail(r.Context(), email); err != nil {
			srv.Logger.Error("error confirming email", "error", err)
			http.Error(w, "Verification error", http.StatusInternalServerError)
			return
		}

		respondMessage(w, srv.Logger, http.StatusOK, "Email confirmed")
	})
}

// RequestEmailHandler re-sends the verification mail. The response is the
// same generic message whether or not the address exists, so the endpoint
// cannot be used to probe for accounts.
func RequestEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EmailRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := srv.Users.GetByEmail(r.Context(), req.Email)
		if err == nil {
			if user.Confirmed {
				respondMessage(w, srv.Logger, http.StatusOK, "Your email is already confirmed")
				return
			}
			sendMailAsync(srv, "verification", func(ctx context.Context) error {
				return srv.Email.SendVerification(ctx, user.Email, user.Username)
			})
		}

		respondMessage(w, srv.Logger, http.StatusOK, "Check your email for confirmation")
	})
}

// ForgotPasswordHandler sends a password reset mail.
func ForgotPasswordHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EmailRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := srv.Users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			http.Error(w, "User not found", statusFromError(err))
			return
		}

		sendMailAsync(srv, "password reset", func(ctx context.Context) error {
			return srv.Email.SendPasswordReset(ctx, user.Email, user.Username)
		})

		respondMessage(w, srv.Logger, http.StatusOK,
			"Password reset email sent. Please check your inbox.")
	})
}

// ResetPasswordHandler sets a new password using a reset token.
func ResetPasswordHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.NewPassword) < 6 || len(req.NewPassword) > 72 {
			http.Error(w, "Password must be between 6 and 72 characters",
				http.StatusUnprocessableEntity)
			return
		}

		email, err := srv.Auth.VerifyResetToken(req.Token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusBadRequest)
			return
		}

		user, err := srv.Users.GetByEmail(r.Context(), email)
		if err != nil {
			http.Error(w, "User not found", statusFromError(err))
			return
		}

		if err := srv.Users.UpdatePassword(r.Context(), email, req.NewPassword); err != nil {
			srv.Logger.Error("error updating password", "error", err)
			http.Error(w, "Error updating password", http.StatusInternalServerError)
			return
		}

		// Drop any cached identity; the reset may follow a compromise.
		if srv.UserCache != nil {
			srv.UserCache.Invalidate(r.Context(), user.Username)
		}

		respondMessage(w, srv.Logger, http.StatusOK, "Password successfully reset")
	})
}
