package kb

// VariableRecord is a single entry of the variable dictionary (vqd.json):
// one searchable/queryable field of the library system, identified by a
// unique variable name.
type VariableRecord struct {
	ID           int    `json:"id"`
	VariableName string `json:"variable_name"`
	Type         string `json:"type"`
	Format       string `json:"format"`
	RecordType   string `json:"record_type"`
	Description  string `json:"description"`
	SearchText   string `json:"search_text"`
}

// LookupRow maps a short code to a human-readable description, e.g. a
// location or item-status code.
type LookupRow struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Properties  string `json:"properties"`
}

// LookupTable groups lookup rows under a coded table (lkp.json).
type LookupTable struct {
	TableID          string      `json:"table_id"`
	TableDescription string      `json:"table_description"`
	TableProperties  []string    `json:"table_properties"`
	Rows             []LookupRow `json:"rows"`
}

// Document is an ingested free-text procedure file. Duplicates are permitted
// and simply accumulate; there is no identity beyond path+name.
type Document struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}
