package main

import (
	"bytes"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// responseCapture mirrors what the downstream handler writes while the
// wrapped writer forwards every byte unchanged to the real client. The
// wrap is built with httpsnoop so the returned writer keeps the exact
// optional-interface surface (http.Flusher, http.Hijacker, io.ReaderFrom,
// http.Pusher) of the original; streaming responses and websocket
// upgrades behave as they would unwrapped.
//
// Body mirroring is opt-in: with captureBody false the wrapper only
// records the status code, so paths that are never logged pay no
// buffering cost.
type responseCapture struct {
	statusCode  int
	wroteHeader bool
	captureBody bool
	body        bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter, captureBody bool) (*responseCapture, http.ResponseWriter) {
	rc := &responseCapture{statusCode: http.StatusOK, captureBody: captureBody}
	wrapped := httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				next(code)
				if !rc.wroteHeader {
					rc.statusCode = code
					rc.wroteHeader = true
				}
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(p []byte) (int, error) {
				// Forward first, then mirror only the bytes the
				// client actually received.
				n, err := next(p)
				rc.wroteHeader = true
				if rc.captureBody && n > 0 {
					rc.body.Write(p[:n])
				}
				return n, err
			}
		},
	})
	return rc, wrapped
}

// capturedText returns the full decoded response body as written by the
// handler. Empty when nothing was written or when body capture is off.
func (rc *responseCapture) capturedText() string {
	return rc.body.String()
}

func (rc *responseCapture) status() int {
	return rc.statusCode
}

func (rc *responseCapture) bytesWritten() int {
	return rc.body.Len()
}
