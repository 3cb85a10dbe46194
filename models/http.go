package models

// Request payloads for the HTTP API. Mutating requests carry the identity
// token in the body; the authorization gate verifies it and overwrites the
// Username field with the token's embedded username, so handlers never act
// on a caller-supplied identity.

// SignupRequest is the payload of POST /v1/auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SigninRequest is the payload of POST /v1/auth/signin.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DeleteUserRequest is the payload of DELETE /v1/auth/deleteuser.
// The target user is resolved from the token, never from the body.
type DeleteUserRequest struct {
	Token string `json:"token"`

	// Username is populated by the authorization gate from the verified
	// token. Any value supplied by the caller is discarded.
	Username string `json:"-"`
}

// CreateTaskRequest is the payload of POST /v1/task.
type CreateTaskRequest struct {
	Token string    `json:"token"`
	Name  string    `json:"name"`
	Stage TaskStage `json:"stage,omitempty"`

	// Username is populated by the authorization gate from the verified token.
	Username string `json:"-"`
}

// UpdateTaskRequest is the payload of PATCH /v1/task/{id}.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Token string     `json:"token"`
	Name  *string    `json:"name,omitempty"`
	Stage *TaskStage `json:"stage,omitempty"`

	// Username is populated by the authorization gate from the verified token.
	Username string `json:"-"`
}

// DeleteTaskRequest is the payload of DELETE /v1/task/{id}.
type DeleteTaskRequest struct {
	Token string `json:"token"`

	// Username is populated by the authorization gate from the verified token.
	Username string `json:"-"`
}

// BearerToken returns the raw identity token carried in the payload.
func (r *DeleteUserRequest) BearerToken() string { return r.Token }
func (r *CreateTaskRequest) BearerToken() string { return r.Token }
func (r *UpdateTaskRequest) BearerToken() string { return r.Token }
func (r *DeleteTaskRequest) BearerToken() string { return r.Token }

// SetUsername attaches the verified token identity to the payload,
// replacing whatever the caller self-reported.
func (r *DeleteUserRequest) SetUsername(username string) { r.Username = username }
func (r *CreateTaskRequest) SetUsername(username string) { r.Username = username }
func (r *UpdateTaskRequest) SetUsername(username string) { r.Username = username }
func (r *DeleteTaskRequest) SetUsername(username string) { r.Username = username }

// AuthResponse is returned by signup and signin: a freshly signed token
// plus the sanitized user record.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// UserResponse wraps a sanitized user record.
type UserResponse struct {
	User PublicUser `json:"user"`
}

// TaskResponse wraps a single task with its sanitized owner snapshot.
type TaskResponse struct {
	Task Task `json:"task"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
