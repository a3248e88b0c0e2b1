package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	testutil "github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/tests"
)

func Test_userApi_login(t *testing.T) {
	ta := setup(t)
	testutil.CreateUser(t, ta.usrRepo, "fa22bscs001", "Ada L", "s3cr3t!", auth.RoleStudent)

	tests := []httpTest{
		{
			name: "empty body", method: http.MethodPost, path: "/v1/users/login",
			wantCode: http.StatusBadRequest,
		},
		{
			name: "bad credentials", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, map[string]string{"username": "fa22bscs001", "password": "nope"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown user looks the same", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, map[string]string{"username": "ghost", "password": "s3cr3t!"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "ok", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, map[string]string{"username": "fa22bscs001", "password": "s3cr3t!"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
					t.Errorf("expected a token; body = %v", rec.Body.String())
				}
			}
		})
	}
}

func Test_userApi_query(t *testing.T) {
	ta := setup(t)
	admin := testutil.CreateUser(t, ta.usrRepo, "admin", "Administrator", "admin123", auth.RoleAdmin)
	std := testutil.CreateUser(t, ta.usrRepo, "fa22bscs001", "Ada L", "s3cr3t!", auth.RoleStudent)

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/users",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "students denied", method: http.MethodGet, path: "/v1/users",
			token: ta.getToken(t, std), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "not permitted"}),
		},
		{
			name: "admin gets all", method: http.MethodGet, path: "/v1/users",
			token: ta.getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallList(t, admin, std),
		},
		{
			name: "filter by role", method: http.MethodGet, path: "/v1/users?role=student",
			token: ta.getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallList(t, std),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_changePassword(t *testing.T) {
	ta := setup(t)
	std := testutil.CreateUser(t, ta.usrRepo, "fa22bscs001", "Ada L", "oldpass1", auth.RoleStudent)
	token := ta.getToken(t, std)

	body := marchallObj(t, map[string]string{
		"old_password":         "oldpass1",
		"new_password":         "newpass1",
		"new_password_confirm": "newpass1",
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/users/password", token, body)
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
	}

	// old password no longer logs in, new one does
	req, rec = newRequest(http.MethodPost, "/v1/users/login",
		marchallObj(t, map[string]string{"username": "fa22bscs001", "password": "oldpass1"}))
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("old password still accepted; code = %v", rec.Code)
	}

	req, rec = newRequest(http.MethodPost, "/v1/users/login",
		marchallObj(t, map[string]string{"username": "fa22bscs001", "password": "newpass1"}))
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("new password rejected; code = %v; body = %v", rec.Code, rec.Body.String())
	}
}
