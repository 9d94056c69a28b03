package lsp

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestReadMessage(t *testing.T) {
	input := "Content-Length: 18\r\n\r\n{\"jsonrpc\":\"2.0\"}\n"
	payload, err := readMessage(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != "{\"jsonrpc\":\"2.0\"}\n" {
		t.Errorf("payload = %q", payload)
	}
}

func TestReadMessageExtraHeaders(t *testing.T) {
	input := "Content-Type: application/vscode-jsonrpc\r\nContent-Length: 2\r\n\r\n{}"
	payload, err := readMessage(bufio.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatal(err)
	}
	if string(payload) != "{}" {
		t.Errorf("payload = %q", payload)
	}
}

func TestReadMessageMissingContentLength(t *testing.T) {
	input := "Content-Type: text\r\n\r\n{}"
	if _, err := readMessage(bufio.NewReader(strings.NewReader(input))); err == nil {
		t.Error("missing Content-Length accepted")
	}
}

func TestReadMessageBadContentLength(t *testing.T) {
	input := "Content-Length: nope\r\n\r\n{}"
	if _, err := readMessage(bufio.NewReader(strings.NewReader(input))); err == nil {
		t.Error("bad Content-Length accepted")
	}
}

func TestReadMessageTruncatedBody(t *testing.T) {
	input := "Content-Length: 10\r\n\r\n{}"
	if _, err := readMessage(bufio.NewReader(strings.NewReader(input))); err == nil {
		t.Error("truncated body accepted")
	}
}

func TestReadMessageEOF(t *testing.T) {
	_, err := readMessage(bufio.NewReader(strings.NewReader("")))
	if err != io.EOF {
		t.Errorf("err = %v, want EOF", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	var buf bytes.Buffer
	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	if err := writeMessage(&buf, body); err != nil {
		t.Fatal(err)
	}
	payload, err := readMessage(bufio.NewReader(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, body) {
		t.Errorf("round trip produced %q", payload)
	}
}
