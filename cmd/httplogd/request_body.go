package main

import (
	"bufio"
	"bytes"
	"io"
)

// bufferedBody holds a request body that has been drained into memory so it
// can be read any number of times. Every call to stream returns an
// independent cursor over the same immutable bytes: the logger reads one
// copy while the downstream handler gets another, and neither can exhaust
// or corrupt the other.
type bufferedBody struct {
	data []byte
}

// newBufferedBody eagerly reads r to completion. A read failure is fatal
// for the request and is returned to the caller.
func newBufferedBody(r io.Reader) (*bufferedBody, error) {
	if r == nil {
		return &bufferedBody{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &bufferedBody{data: data}, nil
}

// stream returns a fresh reader over the stored bytes. Restart by calling
// stream again, not by rewinding an existing reader.
func (b *bufferedBody) stream() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(b.data))
}

// lines returns a line-oriented reader over the stored bytes, built on a
// fresh stream.
func (b *bufferedBody) lines() *bufio.Scanner {
	return bufio.NewScanner(b.stream())
}

func (b *bufferedBody) text() string {
	return string(b.data)
}

func (b *bufferedBody) size() int {
	return len(b.data)
}
