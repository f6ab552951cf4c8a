// Package session holds the per-login application state that the route
// guard and handlers read: the authenticated user, multi-step form drafts,
// submitted-record mirrors, training assignments and passcode history.
// State lives in process memory only; the database is the durable source
// of truth and sessions mirror confirmed writes.
package session

import (
	"strings"
	"sync"
	"time"

	"trainhub/internal/rbac"

	"github.com/google/uuid"
)

// AuthenticatedUser is created on successful login and destroyed on
// logout/reset. The role is immutable for the session's lifetime.
type AuthenticatedUser struct {
	Email    string    `json:"email"`
	Role     rbac.Role `json:"role"`
	Name     string    `json:"name,omitempty"`
	Passcode string    `json:"passcode,omitempty"`
}

// FormKind names a draft slot; one draft per kind per session.
type FormKind string

const (
	FormWelcomePolicy      FormKind = "welcome_policy"
	FormCourseRegistration FormKind = "course_registration"
	FormMedicalScreening   FormKind = "medical_screening"
	FormBosiet             FormKind = "bosiet"
	FormFireWatch          FormKind = "fire_watch"
	FormCSER               FormKind = "cser"
	FormSize               FormKind = "size"
	FormUseeUact           FormKind = "usee_uact"
	FormRequestComplaint   FormKind = "request_complaint"
)

// Record is one submitted entity mirrored into the session. Submission
// fills in id and submittedAt when absent.
type Record map[string]interface{}

// Session is the state container for one login. All mutation actions run
// to completion under the session lock; last writer wins.
type Session struct {
	mu sync.Mutex

	user        *AuthenticatedUser
	drafts      map[FormKind]Record
	submissions map[FormKind][]Record
	assignments map[string][]string
	passcodes   []Record
	cursor      int
}

func newSession(user AuthenticatedUser) *Session {
	return &Session{
		user:        &user,
		drafts:      make(map[FormKind]Record),
		submissions: make(map[FormKind][]Record),
		assignments: make(map[string][]string),
		cursor:      1,
	}
}

// User returns a copy of the authenticated user, or nil after Reset.
func (s *Session) User() *AuthenticatedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser replaces the current authenticated user.
func (s *Session) SetUser(user AuthenticatedUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// Reset clears the user and every transient held for the session: drafts,
// submission mirrors, assignments and the onboarding cursor.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.drafts = make(map[FormKind]Record)
	s.submissions = make(map[FormKind][]Record)
	s.assignments = make(map[string][]string)
	s.passcodes = nil
	s.cursor = 1
}

// SaveDraft overwrites the named form's draft. The store performs no
// validation; that happens before submission.
func (s *Session) SaveDraft(kind FormKind, draft Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[kind] = cloneRecord(draft)
}

// Draft returns the current draft for kind, or nil.
func (s *Session) Draft(kind FormKind) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecord(s.drafts[kind])
}

// Submit mirrors a record for kind, generating an id and submission
// timestamp when the caller has not set them, and drops the matching
// draft. A record carrying the id of an already-mirrored one replaces
// it in place, so re-submitting an upserted form never duplicates the
// mirror entry.
func (s *Session) Submit(kind FormKind, record Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := cloneRecord(record)
	if rec == nil {
		rec = Record{}
	}
	if id, ok := rec["id"].(string); !ok || id == "" {
		rec["id"] = uuid.New().String()
	}
	if _, ok := rec["submittedAt"]; !ok {
		rec["submittedAt"] = time.Now()
	}

	replaced := false
	for i, existing := range s.submissions[kind] {
		if existing["id"] == rec["id"] {
			s.submissions[kind][i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		s.submissions[kind] = append(s.submissions[kind], rec)
	}
	delete(s.drafts, kind)
	return cloneRecord(rec)
}

// Submissions returns the mirrored records for kind.
func (s *Session) Submissions(kind FormKind) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.submissions[kind]))
	for _, rec := range s.submissions[kind] {
		out = append(out, cloneRecord(rec))
	}
	return out
}

// AssignTrainingModules replaces the assignment set for a trainee email.
func (s *Session) AssignTrainingModules(email string, modules []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[strings.ToLower(email)] = append([]string(nil), modules...)
}

// Assignments returns the module set assigned to a trainee email.
func (s *Session) Assignments(email string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.assignments[strings.ToLower(email)]...)
}

// UpdateRequestComplaintStatus mutates the status of one mirrored
// request/complaint record, stamping resolvedAt when it becomes resolved.
// Unknown ids are a no-op.
func (s *Session) UpdateRequestComplaintStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.submissions[FormRequestComplaint] {
		if rid, ok := rec["id"].(string); ok && rid == id {
			rec["status"] = status
			if status == "RESOLVED" {
				rec["resolvedAt"] = time.Now()
			}
			return true
		}
	}
	return false
}

// AddPasscode mirrors an issued or consumed passcode row. Same-id
// records replace the earlier mirror entry.
func (s *Session) AddPasscode(record Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := cloneRecord(record)
	if rec == nil {
		rec = Record{}
	}
	for i, existing := range s.passcodes {
		if existing["id"] == rec["id"] {
			s.passcodes[i] = rec
			return cloneRecord(rec)
		}
	}
	s.passcodes = append(s.passcodes, rec)
	return cloneRecord(rec)
}

// MarkPasscodeUsed flips the mirrored passcode's used flag and stamps
// usedAt. Unknown ids are a no-op. The passcode table stays the durable
// record; this only keeps the session's view current.
func (s *Session) MarkPasscodeUsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.passcodes {
		if rid, ok := rec["id"].(string); ok && rid == id {
			rec["isUsed"] = true
			rec["usedAt"] = time.Now()
			return true
		}
	}
	return false
}

// Passcodes returns the mirrored passcode history.
func (s *Session) Passcodes() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.passcodes))
	for _, rec := range s.passcodes {
		out = append(out, cloneRecord(rec))
	}
	return out
}

// Cursor returns the onboarding step cursor (1-based).
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// SetCursor stores the onboarding step cursor with a floor of 1.
func (s *Session) SetCursor(cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cursor < 1 {
		cursor = 1
	}
	s.cursor = cursor
}

func cloneRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// Manager owns all live sessions, keyed by opaque token. It is created at
// application start and injected where needed; there is no package-level
// singleton.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session for token, replacing any previous one.
func (m *Manager) Create(token string, user AuthenticatedUser) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := newSession(user)
	m.sessions[token] = sess
	return sess
}

// Get returns the session for token, or nil.
func (m *Manager) Get(token string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token]
}

// Destroy resets and removes the session for token.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	sess := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if sess != nil {
		sess.Reset()
	}
}
