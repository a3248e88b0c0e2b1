package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func Test_feedbackApi(t *testing.T) {
	ta := setup(t)
	admin := testutil.CreateUser(t, ta.usrRepo, "admin", "Administrator", "admin123", auth.RoleAdmin)
	teacher := testutil.CreateUser(t, ta.usrRepo, "t1", "Teacher One", "s3cr3t!", auth.RoleTeacher)
	std := testutil.CreateUser(t, ta.usrRepo, "fa22bscs001", "Ada L", "s3cr3t!", auth.RoleStudent)

	body := marchallObj(t, map[string]string{"message": "The lab AC is broken"})

	t.Run("student files feedback", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/feedback", ta.getToken(t, std), body)
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}

		var entry feedback.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if entry.RollNo != "fa22bscs001" {
			t.Errorf("roll_no = %q; want %q", entry.RollNo, "fa22bscs001")
		}
	})

	tests := []httpTest{
		{
			name: "anonymous cannot file", method: http.MethodPost, path: "/v1/feedback", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "teacher cannot file", method: http.MethodPost, path: "/v1/feedback", body: body,
			token: ta.getToken(t, teacher), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "not permitted"}),
		},
		{
			name: "teacher cannot read the box", method: http.MethodGet, path: "/v1/feedback",
			token: ta.getToken(t, teacher), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "not permitted"}),
		},
		{
			name: "student cannot read the box", method: http.MethodGet, path: "/v1/feedback",
			token: ta.getToken(t, std), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "not permitted"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("admin reads the box", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/feedback", ta.getToken(t, admin))
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}

		var entries []feedback.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(entries) != 1 || entries[0].Message != "The lab AC is broken" {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})
}
