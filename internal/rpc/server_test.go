package rpc

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"joflow/internal/config"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s := NewServer(&config.AppConfig{OutputDir: t.TempDir()})
	s.out = out
	return s, out
}

func roundTrip(t *testing.T, s *Server, out *bytes.Buffer, method string, params interface{}) JSONRPCResponse {
	t.Helper()
	out.Reset()

	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("Marshalling params: %v", err)
		}
		raw = b
	}
	s.handleRequest(JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: raw})

	var resp JSONRPCResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshalling response %q: %v", out.String(), err)
	}
	return resp
}

func TestHandleRequest_Initialize(t *testing.T) {
	s, out := newTestServer(t)

	resp := roundTrip(t, s, out, "initialize", nil)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Unexpected result shape: %T", resp.Result)
	}
	info, _ := result["serverInfo"].(map[string]interface{})
	if info["name"] != "joflow" {
		t.Errorf("Unexpected server name: %v", info["name"])
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s, out := newTestServer(t)

	resp := roundTrip(t, s, out, "tools/list", nil)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	names := map[string]bool{}
	result := resp.Result.(map[string]interface{})
	for _, tool := range result["tools"].([]interface{}) {
		names[tool.(map[string]interface{})["name"].(string)] = true
	}
	for _, want := range []string{
		"load_table", "preview_table", "load_reference_map",
		"run_enrichment", "merge_with", "convert_workbook", "save_table",
	} {
		if !names[want] {
			t.Errorf("Tool %q missing from listing", want)
		}
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s, out := newTestServer(t)

	resp := roundTrip(t, s, out, "nope", nil)
	if resp.Error == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestToolsCall_LoadPreviewSave(t *testing.T) {
	s, out := newTestServer(t)

	src := filepath.Join(t.TempDir(), "jobs.csv")
	if err := os.WriteFile(src, []byte("ACCTNO,JONO\n123,45\n"), 0644); err != nil {
		t.Fatalf("Writing fixture: %v", err)
	}

	resp := roundTrip(t, s, out, "tools/call", map[string]interface{}{
		"name":      "load_table",
		"arguments": map[string]interface{}{"path": src},
	})
	if resp.Error != nil {
		t.Fatalf("load_table failed: %v", resp.Error)
	}

	resp = roundTrip(t, s, out, "tools/call", map[string]interface{}{
		"name":      "preview_table",
		"arguments": map[string]interface{}{"limit": 5},
	})
	if resp.Error != nil {
		t.Fatalf("preview_table failed: %v", resp.Error)
	}

	resp = roundTrip(t, s, out, "tools/call", map[string]interface{}{
		"name":      "save_table",
		"arguments": map[string]interface{}{},
	})
	if resp.Error != nil {
		t.Fatalf("save_table failed: %v", resp.Error)
	}
	if _, err := os.Stat(filepath.Join(s.cfg.OutputDir, "jobs_processed.csv")); err != nil {
		t.Errorf("Expected saved copy with default suffix: %v", err)
	}
}

func TestToolsCall_RequiresLoadedTable(t *testing.T) {
	s, out := newTestServer(t)

	for _, name := range []string{"preview_table", "run_enrichment", "save_table"} {
		resp := roundTrip(t, s, out, "tools/call", map[string]interface{}{
			"name":      name,
			"arguments": map[string]interface{}{},
		})
		errMap, ok := resp.Error.(map[string]interface{})
		if !ok {
			t.Errorf("%s: expected error without a loaded table", name)
			continue
		}
		if msg, _ := errMap["message"].(string); !strings.Contains(msg, "no table loaded") {
			t.Errorf("%s: unexpected error message %q", name, msg)
		}
	}
}

func TestToolsCall_InvalidAsOf(t *testing.T) {
	s, out := newTestServer(t)

	resp := roundTrip(t, s, out, "tools/call", map[string]interface{}{
		"name":      "run_enrichment",
		"arguments": map[string]interface{}{"as_of": "01/02/2024"},
	})
	if resp.Error == nil {
		t.Error("Expected error for malformed as_of date")
	}
}
