package forms

import (
	"fmt"

	"github.com/ratehub/storefront/internal/core/domain"
)

// AddStoreDraft backs the admin store-creation form. OwnerID is not
// typed directly by the user; it is fixed by selecting a candidate from
// the owner search.
type AddStoreDraft struct {
	Name    string `form:"name"    validate:"required"`
	Email   string `form:"email"   validate:"required,simple_email"`
	Address string `form:"address" validate:"required,max=400"`
	OwnerID int64  `form:"ownerId"`
}

// AddStoreForm couples the draft with its error map and the owner
// selection state. It lives for exactly one open form: built when the
// form renders, rebuilt from the posted fields on submit, discarded on
// success or cancel.
type AddStoreForm struct {
	Draft      AddStoreDraft
	Errors     Errors
	SearchTerm string
	Owner      *domain.User
}

// NewAddStoreForm returns an empty form.
func NewAddStoreForm() *AddStoreForm {
	return &AddStoreForm{Errors: Errors{}}
}

// SetTerm records what the admin typed into the owner search box. Typing
// anything different from the current selection clears it, so a stale
// OwnerID can never ride along with a new search.
func (f *AddStoreForm) SetTerm(term string) {
	if f.Owner != nil && term != f.SearchTerm {
		f.Owner = nil
		f.Draft.OwnerID = 0
	}
	f.SearchTerm = term
}

// SelectOwner fixes the owner in the draft, refusing candidates that are
// not store owners or that already have a store. A refusal is a local
// "owner" field error and leaves OwnerID unset; no backend round-trip is
// involved.
func (f *AddStoreForm) SelectOwner(candidate domain.User) bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if candidate.Role != domain.RoleStoreOwner {
		f.Errors["owner"] = "Only store owners can be assigned to stores."
		return false
	}
	if candidate.OwnsStore() {
		f.Errors["owner"] = "This store owner already has a store assigned."
		return false
	}
	f.Owner = &candidate
	f.Draft.OwnerID = candidate.ID
	f.SearchTerm = fmt.Sprintf("%s (%s)", candidate.Name, candidate.Email)
	delete(f.Errors, "owner")
	return true
}

// Validate checks every field plus the owner selection.
func (f *AddStoreForm) Validate() bool {
	f.Errors = check(f.Draft)
	if f.Draft.OwnerID == 0 {
		f.Errors["owner"] = "Please select a store owner"
	}
	return f.Errors.Valid()
}
