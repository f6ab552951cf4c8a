package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trainhub/internal/api/validator"
	"trainhub/internal/rbac"
	"trainhub/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newFormFixture(t *testing.T) (*FormHandler, sqlmock.Sqlmock, *session.Session) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm: %v", err)
	}

	sess := session.NewManager().Create("tok", session.AuthenticatedUser{
		Email: "t@x.com",
		Role:  rbac.RoleTrainee,
	})
	return NewFormHandler(db), mock, sess
}

func postWelcomePolicy(t *testing.T, h *FormHandler, sess *session.Session, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = validator.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/welcome-policy", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", sess)
	c.Set("role", string(rbac.RoleTrainee))
	c.Set("email", "t@x.com")

	if err := h.SubmitWelcomePolicy(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

const welcomePolicyBody = `{"fullName":"Ada Trainee","acknowledged":true,"traineeEmail":"ignored@elsewhere.com"}`

// One submission means one row written and one record mirrored, and the
// database write lands before the session mirror does.
func TestSubmitWelcomePolicyWritesOnceAndMirrorsOnce(t *testing.T) {
	h, mock, sess := newFormFixture(t)

	mock.ExpectQuery(`SELECT .* FROM "welcome_policy_forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "welcome_policy_forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"deleted_at", "signature_file_id"}).AddRow(time.Time{}, ""))

	rec := postWelcomePolicy(t, h, sess, welcomePolicyBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected exactly one lookup and one insert: %v", err)
	}

	list := sess.Submissions(session.FormWelcomePolicy)
	if len(list) != 1 {
		t.Fatalf("mirror = %d records, want exactly 1", len(list))
	}
	// The trainee's own identity wins over whatever email the body carried
	if list[0]["traineeEmail"] != "t@x.com" {
		t.Errorf("traineeEmail = %v, want session identity", list[0]["traineeEmail"])
	}
}

// A double submit updates the existing row and replaces the mirror entry;
// neither the table nor the session grows a duplicate.
func TestResubmitWelcomePolicyUpdatesInPlace(t *testing.T) {
	h, mock, sess := newFormFixture(t)

	mock.ExpectQuery(`SELECT .* FROM "welcome_policy_forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "welcome_policy_forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"deleted_at", "signature_file_id"}).AddRow(time.Time{}, ""))

	first := postWelcomePolicy(t, h, sess, welcomePolicyBody)
	if first.Code != http.StatusCreated {
		t.Fatalf("first submit status = %d, want 201 (%s)", first.Code, first.Body.String())
	}
	rowID := sess.Submissions(session.FormWelcomePolicy)[0]["id"].(string)

	mock.ExpectQuery(`SELECT .* FROM "welcome_policy_forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trainee_email"}).AddRow(rowID, "t@x.com"))
	mock.ExpectExec(`UPDATE "welcome_policy_forms" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	second := postWelcomePolicy(t, h, sess, welcomePolicyBody)
	if second.Code != http.StatusOK {
		t.Fatalf("second submit status = %d, want 200 (%s)", second.Code, second.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("resubmission must update, never insert: %v", err)
	}

	list := sess.Submissions(session.FormWelcomePolicy)
	if len(list) != 1 {
		t.Fatalf("mirror = %d records after double submit, want 1", len(list))
	}
	if list[0]["id"] != rowID {
		t.Errorf("mirror id = %v, want the original row id %s", list[0]["id"], rowID)
	}
}

// A failed write leaves the session untouched; nothing is mirrored
// optimistically.
func TestSubmitWelcomePolicyFailedWriteLeavesSessionClean(t *testing.T) {
	h, mock, sess := newFormFixture(t)

	mock.ExpectQuery(`SELECT .* FROM "welcome_policy_forms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "welcome_policy_forms"`).
		WillReturnError(gorm.ErrInvalidTransaction)

	rec := postWelcomePolicy(t, h, sess, welcomePolicyBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := len(sess.Submissions(session.FormWelcomePolicy)); got != 0 {
		t.Fatalf("mirror = %d records after failed write, want 0", got)
	}
}
