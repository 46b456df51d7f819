package validator

// LoginRequest is the credential pair submitted from the entry form.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// SignupRequest covers both student and professor registration. Professors
// have no cohort, so the group field is substituted server-side.
type SignupRequest struct {
	Name           string `json:"name" validate:"required"`
	Surname        string `json:"surname" validate:"required"`
	Group          string `json:"group"`
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	PasswordRepeat string `json:"passwordRepeat" validate:"required"`
	Github         string `json:"github" validate:"required"`
	IsProfessor    bool   `json:"isProfessor"`
	Agreement      bool   `json:"agreement"`
}

// UpdateProfileRequest mutates the editable subset of the user record.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Github  string `json:"github" validate:"required,github_handle"`
}

// AddTaskRequest registers a classroom assignment for tracking.
type AddTaskRequest struct {
	Name   string `json:"name" validate:"required"`
	Link   string `json:"link" validate:"required"`
	Branch string `json:"branch" validate:"required"`
	TaskID int    `json:"taskId"`
}

// ValidateHTMLRequest asks the backend to validate one submission's markup.
type ValidateHTMLRequest struct {
	GithubLogin string `json:"githubLogin" validate:"required"`
	TaskID      int    `json:"taskId" validate:"required"`
}

// ValidateSignup runs the registration rules in their fixed order, returning
// the first failure. The order is part of the contract: password policy,
// password match, consent, then field formats.
func (v *Validator) ValidateSignup(req *SignupRequest) error {
	if err := CheckPassword(req.Password); err != nil {
		return err
	}
	if req.Password != req.PasswordRepeat {
		return &Error{Message: MsgPasswordMismatch}
	}
	if !req.Agreement {
		return &Error{Message: MsgAgreementRequired}
	}
	if !req.IsProfessor && !ValidGroup(req.Group) {
		return &Error{Message: MsgBadGroup}
	}
	if !ValidEmail(req.Email) {
		return &Error{Message: MsgBadEmail}
	}
	if !ValidGithubHandle(req.Github) {
		return &Error{Message: MsgBadGithub}
	}
	return nil
}

// ValidateAddTask checks the assignment link shape before forwarding.
func (v *Validator) ValidateAddTask(req *AddTaskRequest) error {
	if err := v.Struct(req); err != nil {
		return err
	}
	if !ValidClassroomLink(req.Link) {
		return &Error{Message: MsgBadClassroomLink}
	}
	return nil
}

// ValidateProfile checks a profile edit.
func (v *Validator) ValidateProfile(req *UpdateProfileRequest) error {
	if req.Name == "" || req.Surname == "" || req.Github == "" {
		return &Error{Message: MsgFieldsRequired}
	}
	if !ValidGithubHandle(req.Github) {
		return &Error{Message: MsgBadGithub}
	}
	return nil
}
