package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viant/grocery/schema"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const timestampLayout = "2006-01-02T15:04:05.000000000"

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}, errors ...schema.FieldError) {
	response := schema.Response[interface{}]{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().Format(timestampLayout),
		Errors:    errors,
	}
	if data != nil {
		response.Data = &data
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "Malformed request body", nil)
		return false
	}
	return true
}

func required(fields map[string]string) []schema.FieldError {
	var ret []schema.FieldError
	for _, name := range []string{"username", "email", "password", "activationCode", "resetPasswordCode", "newPassword", "refreshToken"} {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			ret = append(ret, schema.FieldError{Field: name, ErrorMessage: name + " is required", RejectedValue: value})
		}
	}
	return ret
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var request schema.RegisterRequest
	if !decode(w, r, &request) {
		return
	}
	if errs := required(map[string]string{"username": request.Username, "email": request.Email, "password": request.Password}); len(errs) > 0 {
		writeEnvelope(w, http.StatusBadRequest, "Validation failed", nil, errs...)
		return
	}
	email := strings.ToLower(request.Email)
	if !b.emails.Update(email, func(_ string, exists bool) (string, bool) { return request.Username, !exists }) {
		writeEnvelope(w, http.StatusConflict, "The user already exists", nil, schema.FieldError{Field: "email", ErrorMessage: "Email is already registered", RejectedValue: request.Email})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.MinCost)
	if err != nil {
		b.emails.Delete(email)
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	code, err := newCode()
	if err != nil {
		b.emails.Delete(email)
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	created := user{ID: uuid.New().String(), Username: request.Username, Email: email, PasswordHash: hash, ActivationCode: code}
	if !b.users.Update(request.Username, func(_ user, exists bool) (user, bool) { return created, !exists }) {
		b.emails.Delete(email)
		writeEnvelope(w, http.StatusConflict, "The user already exists", nil, schema.FieldError{Field: "username", ErrorMessage: "Username is taken", RejectedValue: request.Username})
		return
	}
	b.logger.Info("activation code issued", zap.String("email", created.Email), zap.String("code", code))
	writeEnvelope(w, http.StatusOK, "User registered. Activation code sent via email.", &schema.RegisterData{
		UserID:  created.ID,
		Email:   created.Email,
		Message: fmt.Sprintf("Please check (%v) for the activation code", created.Email),
	})
}

func (b *Backend) activate(w http.ResponseWriter, r *http.Request) {
	var request schema.ActivateRequest
	if !decode(w, r, &request) {
		return
	}
	username, _ := b.emails.Get(strings.ToLower(request.Email))
	activated := b.users.Update(username, func(u user, exists bool) (user, bool) {
		if !exists || u.ActivationCode == "" || u.ActivationCode != request.ActivationCode {
			return u, false
		}
		u.Active = true
		u.ActivationCode = ""
		return u, true
	})
	if !activated {
		writeEnvelope(w, http.StatusBadRequest, "Invalid activation code", nil, schema.FieldError{Field: "activationCode", ErrorMessage: "Invalid activation code", RejectedValue: request.ActivationCode})
		return
	}
	writeEnvelope(w, http.StatusOK, "Account activated", nil)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var request schema.LoginRequest
	if !decode(w, r, &request) {
		return
	}
	u, ok := b.users.Get(request.Username)
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(request.Password)) != nil {
		writeEnvelope(w, http.StatusBadRequest, "Invalid username or password", nil)
		return
	}
	if !u.Active {
		writeEnvelope(w, http.StatusForbidden, "Account is not activated", nil)
		return
	}
	accessToken, refreshToken, err := b.issueTokens(u.Username)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "Login successful", &schema.LoginData{Username: u.Username, AccessToken: accessToken, RefreshToken: refreshToken})
}

func (b *Backend) refresh(w http.ResponseWriter, r *http.Request) {
	var request schema.RefreshTokenRequest
	if !decode(w, r, &request) {
		return
	}
	username, err := b.verify(request.RefreshToken, refreshTokenType)
	if err != nil {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid refresh token", nil)
		return
	}
	if _, ok := b.users.Get(username); !ok {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid refresh token", nil)
		return
	}
	accessToken, refreshToken, err := b.issueTokens(username)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "Token refreshed", &schema.RefreshTokenData{AccessToken: accessToken, RefreshToken: refreshToken})
}

func (b *Backend) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var request schema.ForgotPasswordRequest
	if !decode(w, r, &request) {
		return
	}
	code, err := newCode()
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	username, _ := b.emails.Get(strings.ToLower(request.Email))
	if !b.users.Update(username, func(u user, exists bool) (user, bool) {
		u.ResetCode = code
		return u, exists
	}) {
		writeEnvelope(w, http.StatusNotFound, "User not found", nil, schema.FieldError{Field: "email", ErrorMessage: "No account for this email", RejectedValue: request.Email})
		return
	}
	b.logger.Info("reset code issued", zap.String("email", request.Email), zap.String("code", code))
	writeEnvelope(w, http.StatusOK, "Reset code sent", &schema.ForgotPasswordData{Message: fmt.Sprintf("Please check (%v) for the reset password code", request.Email)})
}

func (b *Backend) resetPassword(w http.ResponseWriter, r *http.Request) {
	var request schema.ResetPasswordRequest
	if !decode(w, r, &request) {
		return
	}
	if errs := required(map[string]string{"newPassword": request.NewPassword}); len(errs) > 0 {
		writeEnvelope(w, http.StatusBadRequest, "Validation failed", nil, errs...)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	username, _ := b.emails.Get(strings.ToLower(request.Email))
	if !b.users.Update(username, func(u user, exists bool) (user, bool) {
		if !exists || u.ResetCode == "" || u.ResetCode != request.ResetPasswordCode {
			return u, false
		}
		u.PasswordHash = hash
		u.ResetCode = ""
		return u, true
	}) {
		writeEnvelope(w, http.StatusBadRequest, "Invalid reset password code", nil, schema.FieldError{Field: "resetPasswordCode", ErrorMessage: "Invalid reset password code", RejectedValue: request.ResetPasswordCode})
		return
	}
	writeEnvelope(w, http.StatusOK, "Password updated", nil)
}

func (b *Backend) currentUser(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		writeEnvelope(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	username, err := b.verify(parts[1], accessTokenType)
	if err != nil {
		writeEnvelope(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	u, ok := b.users.Get(username)
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "OK", &schema.User{UserID: u.ID, Username: u.Username, Email: u.Email, Active: u.Active})
}
