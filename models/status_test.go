package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusAccepted, StatusDelivered, true},
		{StatusAccepted, StatusCancelled, false},
		{StatusAccepted, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusAccepted, false},
		{StatusCancelled, StatusPending, false},
		{"Unknown", StatusAccepted, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	for _, s := range []string{StatusDelivered, StatusCancelled} {
		if !TerminalStatus(s) {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []string{StatusPending, StatusAccepted, "Unknown"} {
		if TerminalStatus(s) {
			t.Errorf("expected %s not to be terminal", s)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleFarmer, RoleBuyer, RoleTransporter, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected %s to be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Error("expected superuser to be invalid")
	}
}
