package kb

import (
	"encoding/json"

	apperrors "github.com/Kapiti-Coast-District-Libraries/LibSysAI/errors"
)

// Parsing is strict about the container and lenient about its elements: a
// file that is not a JSON array fails outright, while malformed elements are
// dropped so that one corrupt record never aborts ingestion of the rest.

// ParseVariables decodes the variable dictionary. Records without a
// variable_name are skipped; an empty result is a success.
func ParseVariables(data []byte) ([]VariableRecord, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil || elements == nil {
		return nil, apperrors.WrapError(apperrors.ErrFormat, "vqd.json must contain a JSON array")
	}

	records := make([]VariableRecord, 0, len(elements))
	for _, raw := range elements {
		var rec VariableRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.VariableName == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseLookupTables decodes the lookup dictionary. A table without a rows
// array is dropped whole; rows missing an id or description are dropped
// individually.
func ParseLookupTables(data []byte) ([]LookupTable, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil || elements == nil {
		return nil, apperrors.WrapError(apperrors.ErrFormat, "lkp.json must contain a JSON array of tables")
	}

	tables := make([]LookupTable, 0, len(elements))
	for _, raw := range elements {
		var entry struct {
			TableID          string             `json:"table_id"`
			TableDescription string             `json:"table_description"`
			TableProperties  []string           `json:"table_properties"`
			Rows             *[]json.RawMessage `json:"rows"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Rows == nil {
			continue
		}

		table := LookupTable{
			TableID:          entry.TableID,
			TableDescription: entry.TableDescription,
			TableProperties:  entry.TableProperties,
			Rows:             make([]LookupRow, 0, len(*entry.Rows)),
		}
		for _, rawRow := range *entry.Rows {
			var row LookupRow
			if err := json.Unmarshal(rawRow, &row); err != nil {
				continue
			}
			if row.ID == "" || row.Description == "" {
				continue
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}
	return tables, nil
}
