package domain

// SwipeAction is the direction of a swipe.
type SwipeAction string

const (
	SwipeLeft  SwipeAction = "LEFT"
	SwipeRight SwipeAction = "RIGHT"
)

// SwipeRequest records a like/pass against a candidate.
type SwipeRequest struct {
	UserID       string      `json:"userId"`
	SwipedUserID string      `json:"swipedUserId"`
	Action       SwipeAction `json:"action"`
}

// MatchDto describes a confirmed match between two users.
type MatchDto struct {
	User1ID     string `json:"user1Id"`
	User2ID     string `json:"user2Id"`
	MatchedDate string `json:"matchedDate"`
}

// SwipeResponse is the matching service's answer to a swipe.
type SwipeResponse struct {
	MatchDto *MatchDto `json:"matchDto"`
	Matched  bool      `json:"matched"`
}

// Candidate is a profile document surfaced by the matching service.
type Candidate struct {
	KeycloakID    string   `json:"keycloakId"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Gender        string   `json:"gender"`
	UserName      string   `json:"userName"`
	Email         string   `json:"email"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
}

// MatchedUser is the embedded counterpart profile in a history entry.
type MatchedUser struct {
	KeycloakID string `json:"keycloakId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	UserName   string `json:"userName"`
	Email      string `json:"email"`
}

// MatchHistoryEntry is one past match.
type MatchHistoryEntry struct {
	User1ID     string       `json:"user1Id"`
	User2ID     string       `json:"user2Id"`
	MatchedDate string       `json:"matchedDate"`
	OtherUser   *MatchedUser `json:"otherUser,omitempty"`
}
