package rpc

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "load_table",
				"description": "Load a tabular file (CSV, XLSX or JSON) into the session. Replaces any previously loaded table.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path":  map[string]interface{}{"type": "string", "description": "Path to the source file"},
						"sheet": map[string]interface{}{"type": "string", "description": "Optional workbook sheet name (first sheet if omitted)"},
					},
					"required": []string{"path"},
				},
			},
			map[string]interface{}{
				"name":        "preview_table",
				"description": "Return the column list and the first rows of the loaded table.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"limit": map[string]interface{}{"type": "integer", "description": "Max rows to return (default 10)"},
					},
				},
			},
			map[string]interface{}{
				"name":        "load_reference_map",
				"description": "Load (or wholesale reload) the geographic reference table used for region/MSP resolution.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path": map[string]interface{}{"type": "string", "description": "Path to the reference CSV (defaults to the configured MAP_PATH)"},
					},
				},
			},
			map[string]interface{}{
				"name": "run_enrichment",
				"description": "Run the full enrichment pipeline over the loaded table: schema normalization, key alignment, " +
					"date ageing, segment classification, ageing buckets and region/MSP resolution. " +
					"At most one run may be in flight; a concurrent call is refused, not queued. There is no mid-run cancellation.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"as_of": map[string]interface{}{"type": "string", "description": "Optional run date (YYYY-MM-DD, default today)"},
					},
				},
			},
			map[string]interface{}{
				"name":        "merge_with",
				"description": "Merge another tabular file into the loaded table on a join key. The merged result replaces the session table.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path": map[string]interface{}{"type": "string", "description": "Path to the right-hand file"},
						"on":   map[string]interface{}{"type": "string", "description": "Join key column present on both sides"},
						"how":  map[string]interface{}{"type": "string", "enum": []string{"inner", "left"}, "description": "Join mode (default left)"},
					},
					"required": []string{"path", "on"},
				},
			},
			map[string]interface{}{
				"name":        "convert_workbook",
				"description": "Convert an XLSX workbook to one CSV file per sheet.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path":    map[string]interface{}{"type": "string", "description": "Path to the workbook"},
						"out_dir": map[string]interface{}{"type": "string", "description": "Output directory (defaults to the configured output dir)"},
						"sheet":   map[string]interface{}{"type": "string", "description": "Optional single sheet to convert"},
					},
					"required": []string{"path"},
				},
			},
			map[string]interface{}{
				"name":        "save_table",
				"description": "Write the loaded table next to its source format: same family, suffixed base name, into the output directory.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"suffix": map[string]interface{}{"type": "string", "description": "Filename suffix token (default \"_processed\")"},
					},
				},
			},
		},
	}
}
