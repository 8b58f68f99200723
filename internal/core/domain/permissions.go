package domain

import "fmt"

// The functions below decide which affordances a view shows to the current
// user. The remote API enforces authorization independently.

// CanAddRestaurant is true for owners only.
func CanAddRestaurant(r Role) bool { return r == RoleOwner }

// CanManageRestaurant gates the card menu (edit, delete, activate).
func CanManageRestaurant(r Role) bool { return r == RoleOwner || r == RoleAdmin }

// CanOpenRestaurant gates navigation from a card to the detail page. Admins
// moderate from the list and do not open details.
func CanOpenRestaurant(r Role) bool { return r != RoleAdmin }

// CanAddReview is true for regular users only.
func CanAddReview(r Role) bool { return r == RoleUser }

// CanModerateReviews gates the review edit/delete/activate menu.
func CanModerateReviews(r Role) bool { return r == RoleAdmin }

// CanManageUsers gates the users page.
func CanManageUsers(r Role) bool { return r == RoleAdmin }

// CanReply reports whether the owner reply input should be offered for rev.
func CanReply(r Role, rev Review) bool {
	return r == RoleOwner && !rev.HasReplyText()
}

// AdminTabs lists the navigation tabs shown in the header for r.
func AdminTabs(r Role) []string {
	if r != RoleAdmin {
		return nil
	}
	return []string{"Restaurants", "Reviews", "Users"}
}

// Actions is the per-card menu offered for one soft-deletable record.
type Actions struct {
	Edit     bool `json:"edit"`
	Delete   bool `json:"delete"`
	Activate bool `json:"activate"`
}

// MenuActions returns the card menu for a record with status s, given whether
// the viewer may manage it at all.
func MenuActions(allowed bool, s Status) Actions {
	if !allowed {
		return Actions{}
	}
	active := s.IsActive()
	return Actions{Edit: active, Delete: active, Activate: !active}
}

// DeleteConfirmation returns the confirmation prompt for soft deleting a
// restaurant. Owners are told it will be deleted; admins that it becomes
// inactive.
func DeleteConfirmation(r Role, name string) string {
	if r == RoleOwner {
		return fmt.Sprintf("%s will be deleted. Are you sure?", name)
	}
	return fmt.Sprintf("%s will be marked as Inactive. Are you sure?", name)
}

// Labels names the enabled actions, in menu order.
func (a Actions) Labels() []string {
	var out []string
	if a.Edit {
		out = append(out, "edit")
	}
	if a.Delete {
		out = append(out, "delete")
	}
	if a.Activate {
		out = append(out, "activate")
	}
	return out
}
