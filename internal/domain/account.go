package domain

import "time"

// Account is a membership-independent user account. Password holds the
// bcrypt hash, never the plaintext.
type Account struct {
	GUID      string
	Username  string
	Password  string
	CreatedAt time.Time
}

// DTO returns the externally visible view of the account, without the
// password hash.
func (a *Account) DTO() AccountDTO {
	return AccountDTO{
		GUID:      a.GUID,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
	}
}

// AccountDTO is the account representation returned to callers.
type AccountDTO struct {
	GUID      string    `json:"guid"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"c_at"`
}

// CreateAccount holds parameters for registering a new account.
type CreateAccount struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that the request is well-formed.
func (r *CreateAccount) Validate() error {
	if r.Username == "" {
		return ErrValidation("username is required")
	}
	if r.Password == "" {
		return ErrValidation("password is required")
	}
	return nil
}

// TokenPair is an access/refresh token pair bound to one user identity.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
