package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
)

const flatSheetName = "Observables"

var flatHeaders = []any{"Observable", "Object", "Definition", "Value", "IOC", "Shared"}

type ExportService struct {
	events *EventService
}

func NewExportService(events *EventService) *ExportService {
	return &ExportService{events: events}
}

// FlatObservablesXLSX renders the flat observable table of an event as a
// workbook. Group cells of a composition are merged over its rows.
func (s *ExportService) FlatObservablesXLSX(ctx context.Context, eventID string) ([]byte, error) {
	rows, err := s.events.FlatObservables(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return WriteFlatXLSX(rows)
}

func WriteFlatXLSX(rows []*observable.FlatRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", flatSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(flatSheetName, "A1", &flatHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(flatSheetName, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}
	groupStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{row.GroupTitle(), row.Object, row.Definition, row.Value, row.IOC.String(), row.Shared.String()}
		if err := f.SetSheetRow(flatSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	for _, span := range groupSpans(rows) {
		top, _ := excelize.CoordinatesToCellName(1, span.start+2)
		bottom, _ := excelize.CoordinatesToCellName(1, span.end+1)
		if span.end-span.start > 1 {
			if err := f.MergeCell(flatSheetName, top, bottom); err != nil {
				return nil, fmt.Errorf("failed to merge %s:%s: %w", top, bottom, err)
			}
		}
		if err := f.SetCellStyle(flatSheetName, top, bottom, groupStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(flatSheetName, "A", "D", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type span struct {
	start, end int
}

// groupSpans splits rows into group cell ranges [start, end) the way the
// unpaged flat table opens them.
func groupSpans(rows []*observable.FlatRow) []span {
	table := observable.NewFlatTable(rows, 0, max(len(rows), 1))
	var spans []span
	for i := range rows {
		if table.WriteGroupCell(i) {
			spans = append(spans, span{start: i, end: i + 1})
			continue
		}
		spans[len(spans)-1].end = i + 1
	}
	return spans
}
