//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUnauthorizedAccess(t *testing.T) {
	resp := makeAuthenticatedRequest(t, "GET", fmt.Sprintf("%s/v1/papers", baseURL()), "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response failed: %v", err)
	}
	if errResp["error"] == nil {
		t.Fatal("error field is missing")
	}
}

func TestInvalidJSONPayload(t *testing.T) {
	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/auth/register", baseURL()), http.NoBody)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPaperNotFound(t *testing.T) {
	email := fmt.Sprintf("notfound-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	resp := makeAuthenticatedRequest(t, "GET",
		fmt.Sprintf("%s/v1/papers/%s", baseURL(), uuid.NewString()), user.AccessToken, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response failed: %v", err)
	}
	if errResp["error"] != "paper_not_found" {
		t.Fatalf("expected error code 'paper_not_found', got %v", errResp["error"])
	}
}

func TestGenerateMissingSyllabus(t *testing.T) {
	email := fmt.Sprintf("gen-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	payload := map[string]interface{}{
		"semester":     "5",
		"subject":      "DBMS",
		"subject_code": "CS301",
		"total_marks":  50,
		"modules": []map[string]interface{}{
			{"module_number": 1, "title": "Transactions", "topics": "acid", "num_questions": 2, "marks": 10},
		},
		"syllabus_doc_id":        uuid.NewString(),
		"reference_material_ids": []string{uuid.NewString()},
	}

	resp := makeAuthenticatedRequest(t, "POST", fmt.Sprintf("%s/v1/papers/generate", baseURL()), user.AccessToken, payload)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response failed: %v", err)
	}
	if errResp["error"] != "syllabus_not_found" {
		t.Fatalf("expected error code 'syllabus_not_found', got %v", errResp["error"])
	}
}

func TestUploadRejectsUnsupportedFile(t *testing.T) {
	email := fmt.Sprintf("upload-%d@example.com", time.Now().UnixNano())
	user := createRegisteredUser(t, email, "testpassword123")

	resp := uploadFile(t, fmt.Sprintf("%s/v1/files/syllabus", baseURL()), user.AccessToken,
		"syllabus.pdf", "%PDF-1.4 not really text", map[string]string{
			"subject": "DBMS", "subject_code": "CS301", "semester": "5",
		})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response failed: %v", err)
	}
	if errResp["error"] != "unsupported_file" {
		t.Fatalf("expected error code 'unsupported_file', got %v", errResp["error"])
	}
}
