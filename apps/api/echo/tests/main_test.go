package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	. "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/apps/api/echo"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
	logsvc "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/services/logger"
	inmemdb "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/storage/database/inmem"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	conf    *core.Config
	app     Server
	db      *inmemdb.DB
	usrRepo user.Repository
	usrSvc  *user.Service
}

func newTestConfig() *core.Config {
	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "AI Department Portal",
		SecretKey: []byte("test-secret-key"),
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	return conf
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := newTestConfig()
	validate, translator := testutil.NewValidator()
	db := inmemdb.Open()

	usrRepo := inmemdb.NewUserRepository(db)
	stdRepo := inmemdb.NewStudentRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)

	usrSvc := user.NewService(validate, usrRepo)

	app := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logsvc.NewConsoleLogger(nil),
		UserSvc:       usrSvc,
		StudentSvc:    student.NewService(validate, stdRepo, usrSvc),
		CourseSvc:     course.NewService(validate, crsRepo, usrSvc),
		AttendanceSvc: attendance.NewService(validate, inmemdb.NewAttendanceRepository(db), crsRepo, stdRepo),
		MarkSvc:       marks.NewService(validate, inmemdb.NewMarkRepository(db), crsRepo, stdRepo),
		AnnounceSvc:   announce.NewService(validate, inmemdb.NewAnnouncementRepository(db)),
		FeedbackSvc:   feedback.NewService(validate, inmemdb.NewFeedbackRepository(db)),
		Validate:      validate,
		Translator:    translator,
	})

	return &testApp{
		conf:    conf,
		app:     app,
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  usrSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (ta *testApp) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(ta.conf, usr)
	token, err := GenerateToken(ta.conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
