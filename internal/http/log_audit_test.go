package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	applog "catalogview/internal/log"
)

type auditLogEntry struct {
	Action string         `json:"action"`
	Level  string         `json:"level"`
	Audit  bool           `json:"audit"`
	ReqID  string         `json:"req_id"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []auditLogEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.Setup("info", buf)
	defer applog.Setup("info", os.Stdout)

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []auditLogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e auditLogEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []auditLogEntry, action string) (auditLogEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return auditLogEntry{}, false
}

func TestPageActionsAreLogged(t *testing.T) {
	api := newFakeAPI(t)
	api.setProducts(`[{"ProductID":7,"ProductName":"Lamp","UnitPrice":1}]`)
	b := newBrowser(t, api)

	entries := captureLogs(t, func() {
		b.post("/products", url.Values{"productName": {""}, "unitPrice": {"1"}})
		b.post("/products", url.Values{"productName": {"Widget"}, "unitPrice": {"1"}})
		b.post("/products/7/delete", url.Values{"confirm": {"yes"}})
	})

	if e, ok := findAction(entries, "validation.fail"); !ok || e.Level != "warning" {
		t.Fatalf("expected validation.fail warning, got %+v", entries)
	}
	add, ok := findAction(entries, "product.add")
	if !ok || !add.Audit || add.ReqID == "" {
		t.Fatalf("expected audited product.add with req_id, got %+v", entries)
	}
	if add.Fields["product_id"] != float64(42) {
		t.Fatalf("product.add fields = %v", add.Fields)
	}
	if _, ok := findAction(entries, "product.delete"); !ok {
		t.Fatalf("expected product.delete entry, got %+v", entries)
	}
}

func TestRemoteFailureIsLogged(t *testing.T) {
	api := newFakeAPI(t)
	api.setProducts(`{"oops"`)
	b := newBrowser(t, api)

	entries := captureLogs(t, func() {
		b.post("/products/load", nil)
	})
	e, ok := findAction(entries, "catalog.products.load.fail")
	if !ok || e.Level != "error" {
		t.Fatalf("expected catalog.products.load.fail error entry, got %+v", entries)
	}
}
