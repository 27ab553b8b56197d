package domain

// SkillEntry is one offered or wanted skill on a profile.
type SkillEntry struct {
	ID    int64  `json:"id,omitempty"`
	Skill string `json:"skill"`
}

// UserProfile is a Bartr user as returned by the user service.
type UserProfile struct {
	ID            int64        `json:"id,omitempty"`
	KeycloakID    string       `json:"keycloakId"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Gender        string       `json:"gender"`
	UserName      string       `json:"userName"`
	Email         string       `json:"email"`
	Bio           string       `json:"bio,omitempty"`
	Credits       int          `json:"credits,omitempty"`
	LastActiveAt  string       `json:"lastActiveAt,omitempty"`
	SkillsOffered []SkillEntry `json:"skillsOffered,omitempty"`
	SkillsWanted  []SkillEntry `json:"skillsWanted,omitempty"`
}

// SignupRequest creates a new account.
type SignupRequest struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Gender        string   `json:"gender"`
	UserName      string   `json:"userName"`
	Bio           string   `json:"bio"`
	Password      string   `json:"password"`
	Email         string   `json:"email"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
}

// UpdateRequest updates the current profile. Zero fields are omitted.
type UpdateRequest struct {
	FirstName     string   `json:"firstName,omitempty"`
	LastName      string   `json:"lastName,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	UserName      string   `json:"userName,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	Password      string   `json:"password,omitempty"`
	Email         string   `json:"email,omitempty"`
	SkillsOffered []string `json:"skillsOffered,omitempty"`
	SkillsWanted  []string `json:"skillsWanted,omitempty"`
}

// LoginRequest exchanges credentials for tokens at the user service.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the backend-issued tokens.
type LoginResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken,omitempty"`
	TokenType        string `json:"tokenType,omitempty"`
	ExpiresIn        int    `json:"expiresIn,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"errorDescription,omitempty"`
}
