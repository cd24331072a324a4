package schema

const (
	PathRegister       = "/auth/register"
	PathLogin          = "/auth/login"
	PathActivate       = "/auth/activate"
	PathRefreshToken   = "/auth/refresh-token"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
	PathCurrentUser    = "/users/me"
)

type (
	RegisterRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterData struct {
		UserID  string `json:"userId"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginData struct {
		Username     string `json:"username"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	ActivateRequest struct {
		Email          string `json:"email"`
		ActivationCode string `json:"activationCode"`
	}

	RefreshTokenRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	RefreshTokenData struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email"`
	}

	ForgotPasswordData struct {
		Message string `json:"message"`
	}

	ResetPasswordRequest struct {
		Email             string `json:"email"`
		ResetPasswordCode string `json:"resetPasswordCode"`
		NewPassword       string `json:"newPassword"`
	}

	// User is the payload of the current user endpoint
	User struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Active   bool   `json:"active"`
	}
)

type (
	RegisterResponse       = Response[RegisterData]
	LoginResponse          = Response[LoginData]
	RefreshTokenResponse   = Response[RefreshTokenData]
	ForgotPasswordResponse = Response[ForgotPasswordData]
	EmptyResponse          = Response[Empty]
	UserResponse           = Response[User]
)
