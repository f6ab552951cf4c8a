package session

import (
	"testing"
	"time"

	"trainhub/internal/rbac"
)

func newTestSession() *Session {
	m := NewManager()
	return m.Create("tok", AuthenticatedUser{Email: "a@b.com", Role: rbac.RoleTrainee})
}

func TestSetUserAndReset(t *testing.T) {
	s := newTestSession()

	if u := s.User(); u == nil || u.Email != "a@b.com" {
		t.Fatalf("expected user a@b.com, got %+v", u)
	}

	s.SaveDraft(FormWelcomePolicy, Record{"fullName": "A"})
	s.Submit(FormSize, Record{"bootSize": "43"})
	s.AssignTrainingModules("a@b.com", []string{"BOSIET"})
	s.SetCursor(3)

	s.Reset()

	if s.User() != nil {
		t.Error("user survived reset")
	}
	if s.Draft(FormWelcomePolicy) != nil {
		t.Error("draft survived reset")
	}
	if len(s.Submissions(FormSize)) != 0 {
		t.Error("submissions survived reset")
	}
	if len(s.Assignments("a@b.com")) != 0 {
		t.Error("assignments survived reset")
	}
	if s.Cursor() != 1 {
		t.Errorf("cursor = %d after reset, want 1", s.Cursor())
	}
}

func TestSaveDraftOverwrites(t *testing.T) {
	s := newTestSession()
	s.SaveDraft(FormCourseRegistration, Record{"courseName": "Sea Survival"})
	s.SaveDraft(FormCourseRegistration, Record{"courseName": "Fire Fighting"})

	draft := s.Draft(FormCourseRegistration)
	if draft["courseName"] != "Fire Fighting" {
		t.Fatalf("draft = %v, want latest write", draft)
	}
}

func TestSubmitGeneratesIDAndTimestamp(t *testing.T) {
	s := newTestSession()
	stored := s.Submit(FormWelcomePolicy, Record{"fullName": "A", "acknowledged": true})

	id, ok := stored["id"].(string)
	if !ok || id == "" {
		t.Fatal("submit did not generate an id")
	}
	if _, ok := stored["submittedAt"]; !ok {
		t.Fatal("submit did not stamp submittedAt")
	}

	list := s.Submissions(FormWelcomePolicy)
	if len(list) != 1 {
		t.Fatalf("submissions = %d, want exactly 1", len(list))
	}
	if list[0]["fullName"] != "A" {
		t.Errorf("stored record lost field values: %v", list[0])
	}
}

// Re-submitting a one-per-trainee form carries the same row id; the
// mirror must update in place rather than grow a duplicate.
func TestSubmitSameIDReplacesInPlace(t *testing.T) {
	s := newTestSession()
	s.Submit(FormWelcomePolicy, Record{"id": "row-1", "fullName": "A", "acknowledged": true})
	s.Submit(FormWelcomePolicy, Record{"id": "row-1", "fullName": "A B", "acknowledged": true})

	list := s.Submissions(FormWelcomePolicy)
	if len(list) != 1 {
		t.Fatalf("submissions = %d after re-submit, want 1", len(list))
	}
	if list[0]["fullName"] != "A B" {
		t.Errorf("mirror kept stale values: %v", list[0])
	}

	s.Submit(FormWelcomePolicy, Record{"id": "row-2", "fullName": "C", "acknowledged": true})
	if got := len(s.Submissions(FormWelcomePolicy)); got != 2 {
		t.Fatalf("submissions = %d, distinct ids must append", got)
	}
}

func TestSubmitKeepsCallerID(t *testing.T) {
	s := newTestSession()
	stored := s.Submit(FormUseeUact, Record{"id": "fixed-id", "observation": "leak"})
	if stored["id"] != "fixed-id" {
		t.Fatalf("id = %v, want caller-provided id", stored["id"])
	}
}

func TestSubmitDropsDraft(t *testing.T) {
	s := newTestSession()
	s.SaveDraft(FormMedicalScreening, Record{"fullName": "A"})
	s.Submit(FormMedicalScreening, Record{"fullName": "A"})
	if s.Draft(FormMedicalScreening) != nil {
		t.Error("draft retained after submission")
	}
}

func TestAssignTrainingModulesReplaces(t *testing.T) {
	s := newTestSession()
	s.AssignTrainingModules("T@X.com", []string{"BOSIET", "FIRE_WATCH"})
	s.AssignTrainingModules("t@x.com", []string{"CSER"})

	got := s.Assignments("T@x.COM")
	if len(got) != 1 || got[0] != "CSER" {
		t.Fatalf("assignments = %v, want replacement set [CSER]", got)
	}
}

func TestUpdateRequestComplaintStatus(t *testing.T) {
	s := newTestSession()
	rec := s.Submit(FormRequestComplaint, Record{"subject": "wifi", "status": "OPEN"})
	id := rec["id"].(string)

	if !s.UpdateRequestComplaintStatus(id, "RESOLVED") {
		t.Fatal("expected update to find the record")
	}

	list := s.Submissions(FormRequestComplaint)
	if list[0]["status"] != "RESOLVED" {
		t.Errorf("status = %v, want RESOLVED", list[0]["status"])
	}
	if _, ok := list[0]["resolvedAt"].(time.Time); !ok {
		t.Error("resolvedAt not stamped on resolution")
	}

	if s.UpdateRequestComplaintStatus("missing", "RESOLVED") {
		t.Error("unknown id must be a no-op")
	}
}

func TestPasscodeMirror(t *testing.T) {
	s := newTestSession()
	s.AddPasscode(Record{"id": "pc-1", "code": "123456", "isUsed": false})

	if !s.MarkPasscodeUsed("pc-1") {
		t.Fatal("expected mark-used to find the mirrored passcode")
	}
	list := s.Passcodes()
	if len(list) != 1 {
		t.Fatalf("passcodes = %d, want 1", len(list))
	}
	if list[0]["isUsed"] != true {
		t.Errorf("isUsed = %v, want true", list[0]["isUsed"])
	}
	if _, ok := list[0]["usedAt"].(time.Time); !ok {
		t.Error("usedAt not stamped on mark-used")
	}

	if s.MarkPasscodeUsed("missing") {
		t.Error("unknown id must be a no-op")
	}

	// Same id replaces, distinct id appends
	s.AddPasscode(Record{"id": "pc-1", "code": "123456", "isUsed": true})
	s.AddPasscode(Record{"id": "pc-2", "code": "654321"})
	if got := len(s.Passcodes()); got != 2 {
		t.Fatalf("passcodes = %d, want 2", got)
	}

	s.Reset()
	if len(s.Passcodes()) != 0 {
		t.Error("passcode mirror survived reset")
	}
}

func TestCursorFloor(t *testing.T) {
	s := newTestSession()
	s.SetCursor(0)
	if s.Cursor() != 1 {
		t.Errorf("cursor = %d, want floor of 1", s.Cursor())
	}
	s.SetCursor(-3)
	if s.Cursor() != 1 {
		t.Errorf("cursor = %d, want floor of 1", s.Cursor())
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	m.Create("tok", AuthenticatedUser{Email: "a@b.com", Role: rbac.RoleTrainee})

	if m.Get("tok") == nil {
		t.Fatal("expected session for token")
	}
	if m.Get("other") != nil {
		t.Fatal("unexpected session for unknown token")
	}

	m.Destroy("tok")
	if m.Get("tok") != nil {
		t.Fatal("session survived destroy")
	}
}
