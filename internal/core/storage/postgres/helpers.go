package postgres

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/behavior-ledger/internal/api/v1"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
)

// buildBulkInsert renders one multi-row INSERT for events.
// Empty optional strings and empty JSON blobs are bound as NULL.
func buildBulkInsert(events []*v1.Event) (string, []interface{}, error) {
	args := make([]interface{}, 0, len(events)*insertColumnCount)
	rows := make([]string, 0, len(events))

	argi := 1
	for _, evt := range events {
		businessJSON, err := marshalJSONColumn(evt.BusinessData, len(evt.BusinessData) == 0)
		if err != nil {
			return "", nil, fmt.Errorf("failed to marshal business_data for %s: %w", evt.EventID, err)
		}
		contextJSON, err := marshalJSONColumn(evt.Context, evt.Context == nil)
		if err != nil {
			return "", nil, fmt.Errorf("failed to marshal context for %s: %w", evt.EventID, err)
		}

		args = append(args,
			evt.EventID,
			evt.EventType,
			nullString(evt.UserID),
			nullString(evt.SessionID),
			nullString(evt.Page),
			nullString(evt.PageURL),
			nullString(evt.Referrer),
			nullString(evt.ElementType),
			nullString(evt.ElementID),
			nullString(evt.ElementText),
			nullString(evt.ElementClass),
			businessJSON,
			nullInt(evt.Duration),
			nullInt(evt.ScrollDepth),
			contextJSON,
			evt.Timestamp,
		)

		ph := make([]string, insertColumnCount)
		for col := 0; col < insertColumnCount; col++ {
			ph[col] = "$" + strconv.Itoa(argi)
			// business_data and context_data
			if col == 11 || col == 14 {
				ph[col] += "::jsonb"
			}
			argi++
		}
		rows = append(rows, "("+strings.Join(ph, ", ")+")")
	}

	query := "INSERT INTO " + tableBehaviorLogs + " (" + insertColumns + ") VALUES " +
		strings.Join(rows, ", ") + bulkInsertSuffix

	return query, args, nil
}

// classifyOutcomes maps the ids returned by the insert back onto the input order.
// When an id repeats inside one batch only its first occurrence counts as inserted.
func classifyOutcomes(events []*v1.Event, written map[string]struct{}) *storage.BulkResult {
	result := &storage.BulkResult{Outcomes: make([]storage.InsertOutcome, len(events))}
	claimed := make(map[string]struct{}, len(written))

	for i, evt := range events {
		_, ok := written[evt.EventID]
		_, taken := claimed[evt.EventID]
		if ok && !taken {
			claimed[evt.EventID] = struct{}{}
			result.Outcomes[i] = storage.OutcomeInserted
			result.Inserted++
			continue
		}
		result.Outcomes[i] = storage.OutcomeDuplicateID
		result.Duplicates++
	}

	return result
}

func failedOutcomes(n int) []storage.InsertOutcome {
	outcomes := make([]storage.InsertOutcome, n)
	for i := range outcomes {
		outcomes[i] = storage.OutcomeStorageError
	}
	return outcomes
}

func marshalJSONColumn(v interface{}, empty bool) (interface{}, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeJSONColumn decodes a JSONB column. Undecodable content is returned as the raw string
// so one bad row never fails a whole read.
func decodeJSONColumn(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	return v
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n *int64) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanBehaviorRow scans one row of selectBehaviorColumns.
func scanBehaviorRow(row scanner) (*v1.Behavior, error) {
	var b v1.Behavior
	var businessJSON, contextJSON []byte

	err := row.Scan(
		&b.ID,
		&b.EventID,
		&b.EventType,
		&b.UserID,
		&b.SessionID,
		&b.Page,
		&b.PageURL,
		&b.Referrer,
		&b.ElementType,
		&b.ElementID,
		&b.ElementText,
		&b.ElementClass,
		&businessJSON,
		&b.Duration,
		&b.ScrollDepth,
		&contextJSON,
		&b.Timestamp,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan behavior row: %w", err)
	}

	b.BusinessData = decodeJSONColumn(businessJSON)
	b.ContextData = decodeJSONColumn(contextJSON)

	return &b, nil
}
