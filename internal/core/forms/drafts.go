package forms

// RegisterDraft backs the public registration form.
type RegisterDraft struct {
	Name     string `form:"name"     validate:"required,min=20,max=60"`
	Email    string `form:"email"    validate:"required,simple_email"`
	Address  string `form:"address"  validate:"omitempty,max=400"`
	Password string `form:"password" validate:"required,password"`
}

// Validate fills a fresh error map; empty means the draft may be sent.
func (d RegisterDraft) Validate() Errors { return check(d) }

// AddUserDraft backs the admin user-creation form.
type AddUserDraft struct {
	Name     string `form:"name"     validate:"required,min=20,max=60"`
	Email    string `form:"email"    validate:"required,simple_email"`
	Password string `form:"password" validate:"required,password"`
	Address  string `form:"address"  validate:"omitempty,max=400"`
	Role     string `form:"role"     validate:"required,oneof=admin store_owner normal_user"`
}

func (d AddUserDraft) Validate() Errors { return check(d) }

// PasswordChangeDraft backs the password-change sub-form every dashboard
// exposes. Only the new password is policed; the old one just has to be
// present.
type PasswordChangeDraft struct {
	OldPassword string `form:"oldPassword" validate:"required"`
	NewPassword string `form:"newPassword" validate:"required,password"`
}

func (d PasswordChangeDraft) Validate() Errors { return check(d) }
