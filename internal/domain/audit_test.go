package domain

import "testing"

func TestAuditAction_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action AuditAction
		want   bool
	}{
		{AuditActionCreate, true},
		{AuditActionUpdate, true},
		{AuditActionDelete, true},
		{AuditAction("create"), false},
		{AuditAction(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			t.Parallel()
			if got := tt.action.IsValid(); got != tt.want {
				t.Errorf("AuditAction(%q).IsValid() = %v, want %v", tt.action, got, tt.want)
			}
		})
	}
}

func TestAuditAction_String(t *testing.T) {
	t.Parallel()

	if got := AuditActionDelete.String(); got != "DELETE" {
		t.Errorf("String() = %q, want %q", got, "DELETE")
	}
}
