package waitlist

const (
	// JoinPath is appended to the base URL for submissions.
	JoinPath = "/api/growth/waitlist"
	// VerifyPath is the prefix of the invite lookup; the escaped email follows it.
	VerifyPath = "/api/growth/waitlist/verify/"

	// SourceLandingPage identifies the call site to the waitlist service.
	SourceLandingPage = "landing_page"
)

// SubmissionRequest is the POST body. It is built fresh for every attempt.
type SubmissionRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// NewSubmissionRequest returns a request tagged with SourceLandingPage.
func NewSubmissionRequest(email string) SubmissionRequest {
	return SubmissionRequest{Email: email, Source: SourceLandingPage}
}

// JoinResponse is the optional body of a successful submission. The service
// answers either {message, id} for a new entry or {message, email} when the
// address is already listed.
type JoinResponse struct {
	StatusCode int `json:"-"`

	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Email   string `json:"email,omitempty"`
}

type VerifyResponse struct {
	IsInvited  bool    `json:"is_invited"`
	InviteCode *string `json:"invite_code"`
	Message    string  `json:"message,omitempty"`
}
