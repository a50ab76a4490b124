package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNoCache(t *testing.T) {
	var seen http.Header
	h := NoCache(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		w.Header().Set("ETag", `"abc"`)
	}))

	req := httptest.NewRequest(http.MethodGet, "/testpge.wasm", nil)
	req.Header.Set("If-None-Match", `"abc"`)
	req.Header.Set("Accept", "*/*")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen.Get("If-None-Match") != "" {
		t.Errorf("If-None-Match reached the file server")
	}
	if seen.Get("Accept") == "" {
		t.Errorf("unrelated header removed")
	}
	for k, v := range noCacheHeaders {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}
