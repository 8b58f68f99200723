package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInitialsFromName(t *testing.T) {
	cases := map[string]string{
		"Jo Lee":         "JL",
		"jo":             "J",
		"  ada  ":        "A",
		"Mary Ann Smith": "MS",
		"Jo  Lee":        "JL",
		"ñandú pérez":    "ÑP",
		"":               "",
	}
	for in, want := range cases {
		if got := InitialsFromName(in); got != want {
			t.Fatalf("InitialsFromName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusInactive, true},
		{"", StatusInactive, true},
		{StatusInactive, StatusActive, true},
		{StatusActive, StatusActive, false},
		{StatusInactive, StatusInactive, false},
		{StatusActive, "DELETED", false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("%q -> %q: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestRolePermissions(t *testing.T) {
	type perms struct {
		Add, Manage, Open, Review, Moderate, Users bool
		Tabs                                       []string
	}
	got := func(r Role) perms {
		return perms{
			Add:      CanAddRestaurant(r),
			Manage:   CanManageRestaurant(r),
			Open:     CanOpenRestaurant(r),
			Review:   CanAddReview(r),
			Moderate: CanModerateReviews(r),
			Users:    CanManageUsers(r),
			Tabs:     AdminTabs(r),
		}
	}
	want := map[Role]perms{
		RoleUser:  {Open: true, Review: true},
		RoleOwner: {Add: true, Manage: true, Open: true},
		RoleAdmin: {Manage: true, Moderate: true, Users: true, Tabs: []string{"Restaurants", "Reviews", "Users"}},
	}
	for role, w := range want {
		if diff := cmp.Diff(w, got(role)); diff != "" {
			t.Fatalf("%s permissions (-want +got):\n%s", role, diff)
		}
	}
}

func TestCanReply(t *testing.T) {
	open := Review{ID: "v1"}
	blank := Review{ID: "v2", OtherComments: []ReviewComment{{Comment: "  "}}}
	answered := Review{ID: "v3", OtherComments: []ReviewComment{{Comment: "Thanks"}}}

	if !CanReply(RoleOwner, open) || !CanReply(RoleOwner, blank) {
		t.Fatalf("owner may reply while no reply text exists")
	}
	if CanReply(RoleOwner, answered) {
		t.Fatalf("owner may not reply twice")
	}
	if CanReply(RoleAdmin, open) || CanReply(RoleUser, open) {
		t.Fatalf("only owners get the reply box")
	}
}

func TestMenuActions(t *testing.T) {
	if a := MenuActions(false, StatusActive); a != (Actions{}) {
		t.Fatalf("no menu without permission, got %+v", a)
	}
	if diff := cmp.Diff([]string{"edit", "delete"}, MenuActions(true, StatusActive).Labels()); diff != "" {
		t.Fatalf("active labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"activate"}, MenuActions(true, StatusInactive).Labels()); diff != "" {
		t.Fatalf("inactive labels (-want +got):\n%s", diff)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	if got := DeleteConfirmation(RoleOwner, "Pho"); got != "Pho will be deleted. Are you sure?" {
		t.Fatalf("owner prompt: %q", got)
	}
	if got := DeleteConfirmation(RoleAdmin, "Pho"); got != "Pho will be marked as Inactive. Are you sure?" {
		t.Fatalf("admin prompt: %q", got)
	}
}

func TestSelfAssignableRoles(t *testing.T) {
	if !RoleUser.SelfAssignable() || !RoleOwner.SelfAssignable() {
		t.Fatalf("USER and OWNER can sign up")
	}
	if RoleAdmin.SelfAssignable() || Role("ROOT").Valid() {
		t.Fatalf("ADMIN is not self assignable and ROOT is not a role")
	}
}

func TestRemoteError(t *testing.T) {
	err := fmt.Errorf("get restaurant: %w", NewRemoteError(http.StatusNotFound, ""))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("a 404 should match ErrNotFound")
	}
	if got := Message(err); got != FallbackErrorMessage {
		t.Fatalf("expected fallback message, got %q", got)
	}
	if got := Message(NewRemoteError(http.StatusBadRequest, "Email taken")); got != "Email taken" {
		t.Fatalf("expected server message, got %q", got)
	}
	if !NewRemoteError(http.StatusUnauthorized, "x").Unauthorized() {
		t.Fatalf("401 should report Unauthorized")
	}
	if Message(nil) != "" {
		t.Fatalf("nil error has no message")
	}
}

func TestRestaurantFilterNormalize(t *testing.T) {
	got := RestaurantFilter{Rating: "", Skip: -5, Search: "x"}.Normalize()
	if got.Rating != RatingAny || got.Skip != 0 || got.Search != "x" {
		t.Fatalf("unexpected normalized filter %+v", got)
	}
	if kept := (RestaurantFilter{Rating: "5", Skip: 10}).Normalize(); kept.Rating != "5" || kept.Skip != 10 {
		t.Fatalf("valid values must be kept, got %+v", kept)
	}
}
