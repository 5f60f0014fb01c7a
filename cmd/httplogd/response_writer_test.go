package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCaptureWriterMirrorsBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	rc, w := newCaptureWriter(rr, true)

	chunks := []string{"hello ", "streaming ", "world"}
	for _, c := range chunks {
		n, err := w.Write([]byte(c))
		if err != nil || n != len(c) {
			t.Fatalf("Write(%q) = (%d, %v)", c, n, err)
		}
	}

	want := "hello streaming world"
	if got := rr.Body.String(); got != want {
		t.Errorf("client received %q, want %q", got, want)
	}
	if got := rc.capturedText(); got != want {
		t.Errorf("capturedText() = %q, want %q", got, want)
	}
	if rc.bytesWritten() != len(want) {
		t.Errorf("bytesWritten() = %d, want %d", rc.bytesWritten(), len(want))
	}
	if rc.status() != http.StatusOK {
		t.Errorf("status() = %d, want 200", rc.status())
	}
}

func TestCaptureWriterStatusCode(t *testing.T) {
	rr := httptest.NewRecorder()
	rc, w := newCaptureWriter(rr, true)

	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("short and stout"))

	if rr.Code != http.StatusTeapot {
		t.Errorf("client saw status %d, want 418", rr.Code)
	}
	if rc.status() != http.StatusTeapot {
		t.Errorf("status() = %d, want 418", rc.status())
	}
}

func TestCaptureWriterEmptyResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	rc, _ := newCaptureWriter(rr, true)
	if got := rc.capturedText(); got != "" {
		t.Errorf("capturedText() = %q, want empty", got)
	}
}

func TestCaptureWriterStatusOnlyMode(t *testing.T) {
	rr := httptest.NewRecorder()
	rc, w := newCaptureWriter(rr, false)

	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("not retained"))

	if got := rr.Body.String(); got != "not retained" {
		t.Errorf("client received %q, bytes must still be forwarded", got)
	}
	if got := rc.capturedText(); got != "" {
		t.Errorf("capturedText() = %q, want empty in status-only mode", got)
	}
	if rc.status() != http.StatusAccepted {
		t.Errorf("status() = %d, want 202", rc.status())
	}
}

// plainWriter deliberately implements nothing beyond http.ResponseWriter.
type plainWriter struct {
	header http.Header
}

func (p *plainWriter) Header() http.Header         { return p.header }
func (p *plainWriter) Write(b []byte) (int, error) { return len(b), nil }
func (p *plainWriter) WriteHeader(int)             {}

func TestCaptureWriterKeepsInterfaceSurface(t *testing.T) {
	// A recorder supports Flush; the wrap must not hide that.
	_, w := newCaptureWriter(httptest.NewRecorder(), true)
	if _, ok := w.(http.Flusher); !ok {
		t.Error("wrapped recorder lost http.Flusher")
	}

	// A writer without Flush must not gain it through the wrap, or
	// streaming handlers would flush into the void.
	_, bare := newCaptureWriter(&plainWriter{header: http.Header{}}, true)
	if _, ok := bare.(http.Flusher); ok {
		t.Error("wrap invented http.Flusher on a writer that has none")
	}
	if _, ok := bare.(http.Hijacker); ok {
		t.Error("wrap invented http.Hijacker on a writer that has none")
	}
}
