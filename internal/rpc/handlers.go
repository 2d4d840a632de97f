package rpc

import (
	"encoding/json"
	"fmt"
	"time"

	"joflow/internal/convert"
	"joflow/internal/enrich"
	"joflow/internal/merge"
	"joflow/internal/refmap"
	"joflow/internal/table"

	"github.com/rs/zerolog/log"
)

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}
	args := call.Arguments

	var data interface{}
	var err error

	switch call.Name {
	case "load_table":
		data, err = s.handleLoadTable(asString(args["path"]), asString(args["sheet"]))
	case "preview_table":
		data, err = s.handlePreview(asInt(args["limit"]))
	case "load_reference_map":
		data, err = s.handleLoadReferenceMap(asString(args["path"]))
	case "run_enrichment":
		data, err = s.handleRunEnrichment(asString(args["as_of"]))
	case "merge_with":
		data, err = s.handleMergeWith(asString(args["path"]), asString(args["on"]), asString(args["how"]))
	case "convert_workbook":
		data, err = s.handleConvertWorkbook(asString(args["path"]), asString(args["out_dir"]), asString(args["sheet"]))
	case "save_table":
		data, err = s.handleSaveTable(asString(args["suffix"]))
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) handleLoadTable(path, sheet string) (interface{}, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	t, err := table.Load(path, table.Options{Sheet: sheet, Fallback: s.cfg.FallbackEncoding})
	if err != nil {
		return nil, err
	}
	s.session.SetTable(t, path)
	log.Info().Str("path", path).Int("rows", len(t.Rows)).Msg("Table loaded")
	return map[string]interface{}{
		"path":    path,
		"rows":    len(t.Rows),
		"columns": t.Columns,
	}, nil
}

func (s *Server) handlePreview(limit int) (interface{}, error) {
	t, path := s.session.Table()
	if t == nil {
		return nil, fmt.Errorf("no table loaded")
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > len(t.Rows) {
		limit = len(t.Rows)
	}

	rows := make([]map[string]*string, limit)
	for i := 0; i < limit; i++ {
		row := make(map[string]*string, len(t.Columns))
		for _, col := range t.Columns {
			row[col] = t.Rows[i][col]
		}
		rows[i] = row
	}
	return map[string]interface{}{
		"path":      path,
		"totalRows": len(t.Rows),
		"columns":   t.Columns,
		"rows":      rows,
	}, nil
}

func (s *Server) handleLoadReferenceMap(path string) (interface{}, error) {
	if path == "" {
		path = s.cfg.MapPath
	}
	m, err := refmap.Load(path, s.cfg.FallbackEncoding)
	if err != nil {
		return nil, err
	}
	s.session.SetMaps(m)
	return map[string]interface{}{
		"path":           path,
		"regions":        len(m.Region),
		"barangays":      len(m.Barangay),
		"municipalities": len(m.Municipality),
		"provinces":      len(m.Province),
	}, nil
}

func (s *Server) handleRunEnrichment(asOf string) (interface{}, error) {
	runDate := time.Now()
	if asOf != "" {
		parsed, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return nil, fmt.Errorf("invalid as_of date %q: %w", asOf, err)
		}
		runDate = parsed
	}

	if !s.session.TryBeginRun() {
		return nil, fmt.Errorf("an enrichment run is already in flight")
	}
	defer s.session.EndRun()

	t, _ := s.session.Table()
	if t == nil {
		return nil, fmt.Errorf("no table loaded")
	}

	return enrich.Run(t, s.session.Maps(), runDate), nil
}

func (s *Server) handleMergeWith(path, on, howArg string) (interface{}, error) {
	if path == "" || on == "" {
		return nil, fmt.Errorf("path and on are required")
	}
	how, err := merge.ParseHow(howArg)
	if err != nil {
		return nil, err
	}

	left, sourcePath := s.session.Table()
	if left == nil {
		return nil, fmt.Errorf("no table loaded")
	}

	right, err := table.Load(path, table.Options{Fallback: s.cfg.FallbackEncoding})
	if err != nil {
		return nil, err
	}

	merged, err := merge.Tables(left, right, on, how)
	if err != nil {
		return nil, err
	}
	s.session.SetTable(merged, sourcePath)
	log.Info().Str("right", path).Str("on", on).Int("rows", len(merged.Rows)).Msg("Tables merged")
	return map[string]interface{}{
		"rows":    len(merged.Rows),
		"columns": merged.Columns,
	}, nil
}

func (s *Server) handleConvertWorkbook(path, outDir, sheet string) (interface{}, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if outDir == "" {
		outDir = s.cfg.OutputDir
	}
	return convert.Workbook(path, outDir, sheet)
}

func (s *Server) handleSaveTable(suffix string) (interface{}, error) {
	t, sourcePath := s.session.Table()
	if t == nil {
		return nil, fmt.Errorf("no table loaded")
	}
	if suffix == "" {
		suffix = "_processed"
	}

	dest, err := table.OutputPath(sourcePath, suffix, s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	// A failed save leaves the in-memory table intact for a retry.
	if err := table.Save(t, dest); err != nil {
		return nil, err
	}
	log.Info().Str("path", dest).Int("rows", len(t.Rows)).Msg("Table saved")
	return map[string]interface{}{"path": dest, "rows": len(t.Rows)}, nil
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asInt(v interface{}) int {
	if v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		var res int
		fmt.Sscanf(val, "%d", &res)
		return res
	default:
		return 0
	}
}
