package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rajatkhanna/invoice-api/internal/logos"
)

func newLogoHandler(t *testing.T) *LogoHandler {
	t.Helper()
	store, err := logos.NewStore(filepath.Join(t.TempDir(), "logos"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewLogoHandler(store)
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("logo", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/logos/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestLogoUploadAndServe(t *testing.T) {
	h := newLogoHandler(t)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "brand.png", []byte("png bytes")))
	wantStatus(t, rec, http.StatusOK)

	var resp struct {
		Success bool `json:"success"`
		Logo    struct {
			Filename     string `json:"filename"`
			OriginalName string `json:"original_name"`
			URL          string `json:"url"`
			Size         int64  `json:"size"`
		} `json:"logo"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Logo.Filename == "" {
		t.Fatalf("upload response = %+v", resp)
	}
	if resp.Logo.OriginalName != "brand.png" {
		t.Errorf("original_name = %q", resp.Logo.OriginalName)
	}
	if resp.Logo.URL != "/logos/"+resp.Logo.Filename {
		t.Errorf("url = %q", resp.Logo.URL)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logos/"+resp.Logo.Filename, nil)
	req.SetPathValue("filename", resp.Logo.Filename)
	h.Serve(rec, req)
	wantStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "png bytes" {
		t.Errorf("served body = %q", rec.Body.String())
	}
}

func TestLogoUploadRejectsBadType(t *testing.T) {
	h := newLogoHandler(t)
	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "script.sh", []byte("#!/bin/sh")))
	wantStatus(t, rec, http.StatusBadRequest)
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "invalid_file_type" {
		t.Errorf("error = %q, want invalid_file_type", resp.Error)
	}
}

func TestLogoUploadRequiresFile(t *testing.T) {
	h := newLogoHandler(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/logos/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestLogoDeleteAndList(t *testing.T) {
	h := newLogoHandler(t)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "brand.jpg", []byte("jpg")))
	wantStatus(t, rec, http.StatusOK)
	var uploaded struct {
		Logo struct {
			Filename string `json:"filename"`
		} `json:"logo"`
	}
	decodeBody(t, rec, &uploaded)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/logos", nil))
	wantStatus(t, rec, http.StatusOK)
	var listed struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	decodeBody(t, rec, &listed)
	if !listed.Success || listed.Count != 1 {
		t.Errorf("list = %+v, want count 1", listed)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/logos/"+uploaded.Logo.Filename, nil)
	req.SetPathValue("filename", uploaded.Logo.Filename)
	h.Delete(rec, req)
	wantStatus(t, rec, http.StatusOK)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/logos/"+uploaded.Logo.Filename, nil)
	req.SetPathValue("filename", uploaded.Logo.Filename)
	h.Delete(rec, req)
	wantStatus(t, rec, http.StatusNotFound)
}
