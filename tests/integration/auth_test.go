//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestRegisterFlow(t *testing.T) {
	email := fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	if user.ID == "" {
		t.Fatal("user ID is empty")
	}
	if user.AccessToken == "" {
		t.Fatal("access token is empty")
	}
	if user.RefreshToken == "" {
		t.Fatal("refresh token is empty")
	}
}

func TestLoginFlow(t *testing.T) {
	email := fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	_ = createRegisteredUser(t, email, "testpassword123")

	user := loginUser(t, email, "testpassword123")
	if user.ID == "" {
		t.Fatal("user ID is empty")
	}
	if user.AccessToken == "" {
		t.Fatal("access token is empty")
	}
}

func TestTokenRefresh(t *testing.T) {
	email := fmt.Sprintf("refresh-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	resp := makeAuthenticatedRequest(t, "POST", fmt.Sprintf("%s/v1/auth/refresh", baseURL()), "",
		map[string]string{"refresh_token": user.RefreshToken})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected refresh response status: %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode refresh response failed: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatal("access token is empty")
	}
}

func TestGetMe(t *testing.T) {
	email := fmt.Sprintf("getme-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	resp := makeAuthenticatedRequest(t, "GET", fmt.Sprintf("%s/v1/users/me", baseURL()), user.AccessToken, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected get me response status: %d", resp.StatusCode)
	}

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode get me response failed: %v", err)
	}
	if out.ID != user.ID {
		t.Fatalf("user id mismatch: expected %s, got %s", user.ID, out.ID)
	}
	if out.Email != email {
		t.Fatalf("email mismatch: expected %s, got %s", email, out.Email)
	}
}

func TestProfileUpdate(t *testing.T) {
	email := fmt.Sprintf("profile-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	resp := makeAuthenticatedRequest(t, "PUT", fmt.Sprintf("%s/v1/profile", baseURL()), user.AccessToken,
		map[string]string{"department": "CSE", "designation": "Assistant Professor"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected profile update status: %d", resp.StatusCode)
	}

	getResp := makeAuthenticatedRequest(t, "GET", fmt.Sprintf("%s/v1/profile", baseURL()), user.AccessToken, nil)
	defer getResp.Body.Close()

	var out struct {
		Department  string `json:"department"`
		Designation string `json:"designation"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&out); err != nil {
		t.Fatalf("decode profile failed: %v", err)
	}
	if out.Department != "CSE" {
		t.Fatalf("department mismatch: got %s", out.Department)
	}
}
